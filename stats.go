package gastank

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the state of a partition.
// This structure is recorded in HDF5 files so member names are important.
type Stats struct {
	Count      int     // number of molecules
	MeanSpeed  float64 // mean norm of velocities
	MeanEnergy float64 // mean kinetic energy, unit mass
}

// Stats computes the statistics of p.
func (p *Partition) Stats() Stats {
	n := len(p.Molecules)
	if n == 0 {
		return Stats{}
	}
	speed := make([]float64, n)
	energy := make([]float64, n)
	for i, m := range p.Molecules {
		v2 := r2.Norm2(m.Vel)
		speed[i] = r2.Norm(m.Vel)
		energy[i] = 0.5 * v2
	}
	return Stats{
		Count:      n,
		MeanSpeed:  stat.Mean(speed, nil),
		MeanEnergy: stat.Mean(energy, nil),
	}
}
