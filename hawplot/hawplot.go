/*
 * hawplot.go, part of gohawp
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
*/

//Package hawplot draws simple figures of wavepacket trajectories: the path
//of the packet centers, the energies, and the drift of the conserved quantities.
package hawplot

import (
	"fmt"
	"image/color"
	"math"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/observables"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Trace accumulates the data needed for the plots along a trajectory.
type Trace struct {
	T        []float64
	Pos      [][][]float64 //sample, parameter set, axis
	Energies []observables.Summary
}

//Add stores the time, the positions of every parameter set of P, and the observables e.
func (tr *Trace) Add(t float64, P *hawp.Packet, e observables.Summary) {
	pos := make([][]float64, 0, len(P.Params()))
	for _, ps := range P.Params() {
		pos = append(pos, append([]float64(nil), ps.Pos...))
	}
	tr.T = append(tr.T, t)
	tr.Pos = append(tr.Pos, pos)
	tr.Energies = append(tr.Energies, e)
}

//Len returns the number of samples
func (tr *Trace) Len() int { return len(tr.T) }

var palette = []color.RGBA{
	{R: 200, A: 255},
	{B: 200, A: 255},
	{G: 150, A: 255},
	{R: 180, G: 120, A: 255},
	{R: 120, B: 160, A: 255},
}

func newPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

func addLine(p *plot.Plot, pts plotter.XYs, label string, i int) error {
	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.Color = palette[i%len(palette)]
	l.Width = vg.Points(1)
	p.Add(l)
	if label != "" {
		p.Legend.Add(label, l)
	}
	return nil
}

//PathPlot plots the path of the center of every parameter set. For 2 or more
//dimensions the first two axes are plotted against each other, in one dimension
//the position is plotted against time. The format is taken from the extension
//of filename.
func PathPlot(tr *Trace, title, filename string) error {
	if tr.Len() == 0 {
		return fmt.Errorf("hawplot: empty trace")
	}
	D := len(tr.Pos[0][0])
	var p *plot.Plot
	if D >= 2 {
		p = newPlot(title, "q1", "q2")
	} else {
		p = newPlot(title, "t", "q")
	}
	for j := range tr.Pos[0] {
		pts := make(plotter.XYs, tr.Len())
		for i, pos := range tr.Pos {
			if D >= 2 {
				pts[i].X, pts[i].Y = pos[j][0], pos[j][1]
			} else {
				pts[i].X, pts[i].Y = tr.T[i], pos[j][0]
			}
		}
		label := ""
		if len(tr.Pos[0]) > 1 {
			label = fmt.Sprintf("component %d", j)
		}
		if err := addLine(p, pts, label, j); err != nil {
			return err
		}
	}
	return save(p, filename)
}

//EnergyPlot plots the kinetic, potential and total energies against time.
func EnergyPlot(tr *Trace, title, filename string) error {
	if tr.Len() == 0 {
		return fmt.Errorf("hawplot: empty trace")
	}
	p := newPlot(title, "t", "E")
	series := []struct {
		name string
		f    func(observables.Summary) float64
	}{
		{"kinetic", func(s observables.Summary) float64 { return s.Kinetic }},
		{"potential", func(s observables.Summary) float64 { return s.Potential }},
		{"total", observables.Summary.Total},
	}
	for k, s := range series {
		pts := make(plotter.XYs, tr.Len())
		for i, e := range tr.Energies {
			pts[i].X, pts[i].Y = tr.T[i], s.f(e)
		}
		if err := addLine(p, pts, s.name, k); err != nil {
			return err
		}
	}
	return save(p, filename)
}

//DriftPlot plots log10 of the absolute drift of the norm and of the total
//energy with respect to the first sample. Exact zeros are plotted at -16.
func DriftPlot(tr *Trace, title, filename string) error {
	if tr.Len() == 0 {
		return fmt.Errorf("hawplot: empty trace")
	}
	p := newPlot(title, "t", "log10 |drift|")
	n0 := tr.Energies[0].Norm
	e0 := tr.Energies[0].Total()
	norm := make(plotter.XYs, tr.Len())
	energy := make(plotter.XYs, tr.Len())
	for i, e := range tr.Energies {
		norm[i].X, norm[i].Y = tr.T[i], logAbs(e.Norm-n0)
		energy[i].X, energy[i].Y = tr.T[i], logAbs(e.Total()-e0)
	}
	if err := addLine(p, norm, "norm", 0); err != nil {
		return err
	}
	if err := addLine(p, energy, "energy", 1); err != nil {
		return err
	}
	return save(p, filename)
}

func logAbs(x float64) float64 {
	if x == 0 {
		return -16
	}
	return math.Log10(math.Abs(x))
}

func save(p *plot.Plot, filename string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("hawplot: save %s: %w", filename, err)
	}
	return nil
}
