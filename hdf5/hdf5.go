// Package hdf5 records tank simulations to HDF5 files and loads them back.
package hdf5

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/PrincetonUniversity/gastank"
	"gonum.org/v1/hdf5"
)

// A Dataset stipulates how to generate data and where to store them in the HDF5 file.
type Dataset struct {
	// Name the name of the dataset in the HDF5 file.
	Name string

	// Val is a value of the same concrete type as the underlying type of the data.
	Val interface{}

	// Dims are the dimensions of the data for a single step.
	// Nil dims mean a scalar per step.
	Dims []int

	// Data is a function that produces the data
	// as a pointer to a slice of row-major concrete values,
	// or a pointer to a single value for scalar datasets.
	Data func(t *gastank.Tank) interface{}

	dset   *hdf5.Dataset
	fspace *hdf5.Dataspace
	mspace *hdf5.Dataspace
}

// Config holds the parameters of the HDF5 driver.
type Config struct {
	Output   string     // path of output file
	Steps    int        // total number of steps
	Step     func()     // go to next step
	Datasets []*Dataset // list of datasets

	// Meta is an optional pointer to a struct whose fields are saved
	// as attributes of the "config" dataset.
	Meta interface{}
}

// Run runs a simulation and saves data to an HDF5 file.
func Run(t *gastank.Tank, conf *Config) (err error) {
	if err := os.MkdirAll(filepath.Dir(conf.Output), 0755); err != nil {
		return err
	}

	file, err := hdf5.CreateFile(conf.Output, hdf5.F_ACC_TRUNC)
	if err != nil {
		return err
	}
	defer checkClose(&err, file)

	if err := saveConfig(file, conf); err != nil {
		return err
	}

	for _, d := range conf.Datasets {
		if err := d.init(file, conf); err != nil {
			return err
		}
		defer checkClose(&err, d)
	}

	for k := uint(0); k < uint(conf.Steps); k++ {
		// show progress as percentage
		fmt.Printf("\r% 3d%%", 100*k/uint(conf.Steps))

		for _, d := range conf.Datasets {
			start := make([]uint, len(d.Dims)+1)
			start[0] = k
			if err := d.fspace.SetOffset(start); err != nil {
				return err
			}
			if err := d.dset.WriteSubset(d.Data(t), d.mspace, d.fspace); err != nil {
				return err
			}
		}

		conf.Step()
	}
	fmt.Printf("\r100%%\n")
	return nil
}

// Padded copies ms into a slice of the given capacity.
// Missing molecules are left zero, and a zero radius marks the end of
// the data for Loader. Extra molecules are dropped.
func Padded(ms []gastank.Molecule, capacity int) *[]gastank.Molecule {
	p := make([]gastank.Molecule, capacity)
	copy(p, ms)
	return &p
}

// saveConfig creates a "config" dataset with a null dataspace whose attributes
// reflect the metadata struct plus the creation time.
func saveConfig(file *hdf5.File, conf *Config) (err error) {
	null, err := hdf5.CreateDataspace(hdf5.S_NULL)
	if err != nil {
		return err
	}
	defer checkClose(&err, null)

	anytype, err := hdf5.NewDatatypeFromValue(0)
	if err != nil {
		return err
	}
	defer checkClose(&err, anytype)

	dset, err := file.CreateDataset("config", anytype, null)
	if err != nil {
		return err
	}
	defer checkClose(&err, dset)

	scalar, err := hdf5.CreateDataspace(hdf5.S_SCALAR)
	if err != nil {
		return err
	}
	defer checkClose(&err, scalar)

	now := time.Now().String()
	if err := writeAttribute(dset, scalar, "Time", &now); err != nil {
		return err
	}

	if conf.Meta == nil {
		return nil
	}
	v := reflect.ValueOf(conf.Meta).Elem()
	for i := 0; i < v.NumField(); i++ {
		if err := writeAttribute(dset, scalar, v.Type().Field(i).Name, v.Field(i).Addr().Interface()); err != nil {
			return err
		}
	}
	return nil
}

// writeAttribute saves the value pointed to by ptr as a scalar attribute of dset.
func writeAttribute(dset *hdf5.Dataset, scalar *hdf5.Dataspace, name string, ptr interface{}) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(reflect.ValueOf(ptr).Elem().Interface())
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	attr, err := dset.CreateAttribute(name, dtype, scalar)
	if err != nil {
		return err
	}
	defer checkClose(&err, attr)

	return attr.Write(ptr, dtype)
}

// init creates the dataset and its dataspaces in file.
func (d *Dataset) init(file *hdf5.File, conf *Config) (err error) {
	dtype, err := hdf5.NewDatatypeFromValue(d.Val)
	if err != nil {
		return err
	}
	defer checkClose(&err, dtype)

	udims := make([]uint, len(d.Dims)+1)
	udims[0] = uint(conf.Steps)
	for i, n := range d.Dims {
		udims[i+1] = uint(n)
	}

	d.fspace, err = hdf5.CreateSimpleDataspace(udims, nil)
	if err != nil {
		return err
	}

	start := make([]uint, len(udims))
	count := make([]uint, len(udims))
	copy(count, udims)
	count[0] = 1

	if err := d.fspace.SelectHyperslab(start, nil, count, nil); err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	if len(d.Dims) == 0 {
		d.mspace, err = hdf5.CreateDataspace(hdf5.S_SCALAR)
	} else {
		d.mspace, err = hdf5.CreateSimpleDataspace(udims[1:], nil)
	}
	if err != nil {
		checkClose(&err, d.fspace)
		return err
	}

	d.dset, err = file.CreateDataset(d.Name, dtype, d.fspace)
	if err != nil {
		checkClose(&err, d.fspace)
		checkClose(&err, d.mspace)
	}

	return err
}

// Close closes the HDF5 dataset and Dataspaces.
func (d *Dataset) Close() error {
	if err := d.dset.Close(); err != nil {
		return err
	}
	if err := d.mspace.Close(); err != nil {
		return err
	}
	if err := d.fspace.Close(); err != nil {
		return err
	}
	return nil
}

// checkClose checks for errors in deferred calls.
func checkClose(err *error, c io.Closer) {
	if cerr := c.Close(); *err == nil {
		*err = cerr
	}
}
