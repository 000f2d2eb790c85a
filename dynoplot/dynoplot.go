/*
 * dynoplot.go, part of godyno
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//Package dynoplot renders the static dynophore figures: occurrence barcodes, the
//superfeatures vs environmental partners heatmap, and distance series/histograms. The
//figures are saved to files; the format is taken from the filename extension, as the
//plotting library does.
package dynoplot

import (
	"fmt"
	"image/color"
	"math"

	dyno "github.com/rmera/godyno"
	"github.com/rmera/godyno/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//The pharmacophoric feature-type colors of the dynophore viewers. Unknown types plot black.
var featureColors = map[string]color.RGBA{
	"HBA": {R: 178, G: 34, B: 34, A: 255}, //firebrick
	"HBD": {G: 128, A: 255},               //green
	"H":   {R: 255, G: 215, A: 255},       //gold
	"AR":  {B: 205, A: 255},               //mediumblue
	"PI":  {B: 255, A: 255},               //blue
	"NI":  {R: 255, A: 255},               //red
}

func featureColor(superfeatureID string, colorByType bool) color.RGBA {
	if !colorByType {
		return color.RGBA{A: 255} //black
	}
	ftype := superfeatureID
	for i, v := range superfeatureID {
		if v == '[' {
			ftype = superfeatureID[:i]
			break
		}
	}
	if c, ok := featureColors[ftype]; ok {
		return c
	}
	return color.RGBA{A: 255}
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	return p
}

//frameWindow clamps a frame range/step to the trajectory, with zero values meaning
//"everything": start at 0, end at nframes, step 1.
func frameWindow(nframes, start, end, step int) (int, int, int) {
	if start < 0 {
		start = 0
	}
	if end <= 0 || end > nframes {
		end = nframes
	}
	if step < 1 {
		step = 1
	}
	return start, end, step
}

/*Barcode plots the per-frame occurrences of the selected superfeatures as a barcode, one
  lane per superfeature, ordered by frequency, colored by pharmacophoric feature type if
  colorByType is true and black otherwise. Frames from start to end (0 and 0 for the whole
  trajectory) are shown, every step-th one. The plot is saved to plotname; the extension
  must be included. Returns an error or nil*/
func Barcode(D *dyno.Dynophore, sel []string, colorByType bool, start, end, step int, plotname string) error {
	ids, series, err := stats.OccurrenceSeries(D, sel...)
	if err != nil {
		return err
	}
	freqs, err := stats.SuperfeatureFrequency(D, sel...)
	if err != nil {
		return err
	}
	start, end, step = frameWindow(D.NFrames(), start, end, step)
	laneColor := func(id string) color.RGBA { return featureColor(id, colorByType) }
	return barcode(D.ID(), ids, series, freqs, laneColor, start, end, step, plotname)
}

/*EnvPartnerBarcode plots the per-frame occurrences of each environmental partner of one
  superfeature as a barcode, one lane per partner, ordered by interaction frequency. Every
  lane takes the superfeature's pharmacophoric color if colorByType is true, and black
  otherwise. Frames from start to end (0 and 0 for the whole trajectory) are shown, every
  step-th one. The plot is saved to plotname; the extension must be included. Returns an
  error or nil*/
func EnvPartnerBarcode(D *dyno.Dynophore, superfeatureID string, colorByType bool, start, end, step int, plotname string) error {
	ids, series, err := stats.EnvPartnerOccurrenceSeries(D, superfeatureID)
	if err != nil {
		return err
	}
	freqs, err := stats.Frequencies(D, superfeatureID)
	if err != nil {
		return err
	}
	start, end, step = frameWindow(D.NFrames(), start, end, step)
	c := featureColor(superfeatureID, colorByType)
	return barcode(superfeatureID, ids, series, freqs[superfeatureID], func(string) color.RGBA { return c }, start, end, step, plotname)
}

//barcode draws one occurrence lane per series, least frequent at the bottom, and saves the
//plot. Both barcode variants feed it their own lanes, frequencies and coloring.
func barcode(title string, ids []string, series [][]bool, freqs map[string]float64, laneColor func(id string) color.RGBA, start, end, step int, plotname string) error {
	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	for i := 0; i < len(order); i++ { //small n, insertion sort is fine
		for j := i; j > 0 && freqs[ids[order[j]]] < freqs[ids[order[j-1]]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	p := basicPlot(title, "frame index", "")
	names := make([]string, len(order))
	for lane, idx := range order {
		names[lane] = ids[idx]
		pts := make(plotter.XYs, 0, (end-start)/step+1)
		for f := start; f < end; f += step {
			if series[idx][f] {
				pts = append(pts, plotter.XY{X: float64(f), Y: float64(lane)})
			}
		}
		if len(pts) == 0 {
			continue //a lane with no occurrences still gets its axis label
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Shape = draw.BoxGlyph{}
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Color = laneColor(ids[idx])
		p.Add(s)
	}
	p.NominalY(names...)
	p.X.Min = float64(start)
	p.X.Max = float64(end)
	//plot height depends on the number of lanes
	return p.Save(25*vg.Centimeter, vg.Centimeter*vg.Length(1+len(names)), plotname)
}

/*Heatmap plots the superfeatures vs environmental partners frequency table as a heatmap and
  saves it to plotname (extension included). Returns an error or nil*/
func Heatmap(T *stats.FrequencyTable, title, plotname string) error {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(100)
	hm := plotter.NewHeatMap(T, cm.Palette(255))
	hm.Min = 0
	hm.Max = 100 //frequencies are percentages, so the color scale is absolute
	p := basicPlot(title, "", "")
	p.Add(hm)
	p.NominalX(T.EnvPartners()...)
	p.NominalY(T.Superfeatures()...)
	p.X.Tick.Label.Rotation = math.Pi / 2
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	cols, rows := T.Dims()
	return p.Save(vg.Centimeter*vg.Length(2+cols), vg.Centimeter*vg.Length(2+rows), plotname)
}

/*DistanceSeries plots, for one superfeature, the interaction distance to each of its
  environmental partners against the frame index, skipping the frames where the interaction
  does not occur. Frames from start to end are shown, every step-th one. The plot is saved
  to plotname (extension included). Returns an error or nil*/
func DistanceSeries(D *dyno.Dynophore, superfeatureID string, start, end, step int, plotname string) error {
	sf, err := D.Superfeature(superfeatureID)
	if err != nil {
		return err
	}
	start, end, step = frameWindow(D.NFrames(), start, end, step)
	p := basicPlot(superfeatureID, "frame index", "distance (A)")
	for i, ep := range sf.EnvPartners() {
		dist := ep.Distances()
		pts := make(plotter.XYs, 0, (end-start)/step+1)
		for f := start; f < end; f += step {
			if !math.IsNaN(dist[f]) {
				pts = append(pts, plotter.XY{X: float64(f), Y: dist[f]})
			}
		}
		if len(pts) == 0 {
			continue
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.LineStyle.Color = seriesColor(i)
		p.Add(l)
		p.Legend.Add(ep.ID(), l)
	}
	p.X.Min = float64(start)
	p.X.Max = float64(end)
	return p.Save(25*vg.Centimeter, 10*vg.Centimeter, plotname)
}

/*DistanceHist plots the distance distribution of one (superfeature, envpartner) pair over
  the frames where the interaction occurs, with nbins bins, and saves it to plotname
  (extension included). A pair that never interacts yields an empty plot, not an error.
  Returns an error or nil*/
func DistanceHist(D *dyno.Dynophore, superfeatureID, envPartnerID string, nbins int, plotname string) error {
	sf, err := D.Superfeature(superfeatureID)
	if err != nil {
		return err
	}
	ep, err := sf.EnvPartner(envPartnerID)
	if err != nil {
		return err
	}
	p := basicPlot(fmt.Sprintf("%s / %s", superfeatureID, envPartnerID), "distance (A)", "")
	vals := make(plotter.Values, 0, ep.NFrames())
	for _, v := range ep.Distances() {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	if len(vals) > 0 {
		h, err := plotter.NewHist(vals, nbins)
		if err != nil {
			return err
		}
		h.FillColor = featureColor(superfeatureID, true)
		p.Add(h)
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, plotname)
}

//seriesColor cycles a small palette for the per-partner distance lines.
func seriesColor(i int) color.RGBA {
	palette := []color.RGBA{
		{R: 31, G: 119, B: 180, A: 255},
		{R: 255, G: 127, B: 14, A: 255},
		{R: 44, G: 160, B: 44, A: 255},
		{R: 214, G: 39, B: 40, A: 255},
		{R: 148, G: 103, B: 189, A: 255},
		{R: 140, G: 86, B: 75, A: 255},
	}
	return palette[i%len(palette)]
}
