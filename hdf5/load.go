package hdf5

import (
	"fmt"
	"reflect"

	"github.com/PrincetonUniversity/gastank"
	"gonum.org/v1/hdf5"
)

// A Loader sequentially loads molecules from an HDF5 dataset
// written by Run with a Padded producer.
type Loader struct {
	i uint // index of current slice
	n uint // total number of slices

	data []gastank.Molecule // data buffer

	file   *hdf5.File
	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// NewLoader opens a dataset in an HDF5 file and returns an initialized loader.
func NewLoader(filepath, dataset string) (*Loader, error) {
	l := new(Loader)
	var err error
	l.file, err = hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	l.dset, err = l.file.OpenDataset(dataset)
	if err != nil {
		checkClose(&err, l.file)
		return nil, err
	}
	l.fspace = l.dset.Space()
	dims, _, err := l.fspace.SimpleExtentDims()
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}
	if len(dims) != 2 || dims[0] == 0 {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, fmt.Errorf("loader: expected 2 non-empty dimensions in %q, got %v", dataset, dims)
	}
	l.n = dims[0]

	l.mspace, err = hdf5.CreateSimpleDataspace(dims[1:], nil)
	if err != nil {
		checkClose(&err, l.fspace)
		checkClose(&err, l.dset)
		checkClose(&err, l.file)
		return nil, err
	}

	start := []uint{0, 0}
	count := []uint{1, dims[1]}
	if err := l.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		l.Close()
		return nil, err
	}

	l.data = make([]gastank.Molecule, dims[1])

	return l, nil
}

// Steps returns the number of recorded steps.
func (l *Loader) Steps() int {
	return int(l.n)
}

// Load loads the next batch of data available into *ms
// and cycles when everything has already been loaded.
// The contents of *ms are replaced, its backing array is reused.
func (l *Loader) Load(ms *[]gastank.Molecule) error {
	start := []uint{l.i, 0}
	if err := l.fspace.SetOffset(start); err != nil {
		return err
	}
	l.i = (l.i + 1) % l.n

	if err := l.dset.ReadSubset(&l.data, l.mspace, l.fspace); err != nil {
		return err
	}

	// data valid until first molecule with zero radius
	*ms = (*ms)[:0]
	for _, m := range l.data {
		if m.Radius == 0 {
			break
		}
		*ms = append(*ms, m)
	}

	return nil
}

// Close releases the HDF5 resources held by l.
func (l *Loader) Close() (err error) {
	checkClose(&err, l.mspace)
	checkClose(&err, l.fspace)
	checkClose(&err, l.dset)
	checkClose(&err, l.file)
	return err
}

// ReadScalars reads a whole dataset with one float64 per step,
// such as the wall position recorded by Run.
func ReadScalars(filepath, dataset string) (data []float64, err error) {
	file, err := hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	defer checkClose(&err, file)

	dset, err := file.OpenDataset(dataset)
	if err != nil {
		return nil, err
	}
	defer checkClose(&err, dset)

	space := dset.Space()
	defer checkClose(&err, space)
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, err
	}
	if len(dims) != 1 || dims[0] == 0 {
		return nil, fmt.Errorf("loader: expected 1 non-empty dimension in %q, got %v", dataset, dims)
	}

	data = make([]float64, dims[0])
	if err := dset.Read(&data); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadMeta reads the named attributes of the "config" dataset written by Run
// into the fields of the same name of the struct pointed to by meta.
func ReadMeta(filepath string, meta interface{}, names ...string) (err error) {
	file, err := hdf5.OpenFile(filepath, hdf5.F_ACC_RDONLY)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	dset, err := file.OpenDataset("config")
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	v := reflect.ValueOf(meta).Elem()
	for _, name := range names {
		f := v.FieldByName(name)
		if !f.IsValid() {
			return fmt.Errorf("loader: no field %q in %s", name, v.Type())
		}
		if err := readAttribute(dset, name, f.Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

// readAttribute loads the scalar attribute name of dset into the value pointed to by ptr.
func readAttribute(dset *hdf5.Dataset, name string, ptr interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(ptr).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.OpenAttribute(name)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Read(ptr, dtype)
}
