//Package cloud reads the point-cloud representation of a dynophore, written for 3D viewers:
//for each superfeature, the cloud of positions the feature visits along the trajectory, each
//point weighted and tagged with its frame index. The package also derives the quantities
//viewers use to style a cloud (weighted centroid, extent). Rendering itself is left to the
//external viewer.
package cloud

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"

	dyno "github.com/rmera/godyno"
	"gonum.org/v1/gonum/stat"
)

//Point is one weighted cloud point.
type Point struct {
	X, Y, Z    float64
	Weight     float64
	FrameIndex int
}

//SFCloud is the point cloud of one superfeature.
type SFCloud struct {
	id     string
	color  string //hex RGB, as the generator writes it
	points []Point
}

//ID returns the superfeature ID the cloud belongs to
func (C *SFCloud) ID() string { return C.id }

//Color returns the hex RGB color the generator assigned to the cloud
func (C *SFCloud) Color() string { return C.color }

//NPoints returns the number of points in the cloud
func (C *SFCloud) NPoints() int { return len(C.points) }

//Points returns a copy of the points of the cloud
func (C *SFCloud) Points() []Point {
	return append([]Point{}, C.points...)
}

//FramePoints returns the points of the cloud belonging to the given frame
func (C *SFCloud) FramePoints(frame int) []Point {
	var ret []Point
	for _, p := range C.points {
		if p.FrameIndex == frame {
			ret = append(ret, p)
		}
	}
	return ret
}

//TotalWeight returns the sum of the point weights of the cloud
func (C *SFCloud) TotalWeight() float64 {
	var w float64
	for _, p := range C.points {
		w += p.Weight
	}
	return w
}

//Centroid returns the weight-averaged center of the cloud.
func (C *SFCloud) Centroid() (x, y, z float64) {
	xs := make([]float64, len(C.points))
	ys := make([]float64, len(C.points))
	zs := make([]float64, len(C.points))
	ws := make([]float64, len(C.points))
	for i, p := range C.points {
		xs[i], ys[i], zs[i], ws[i] = p.X, p.Y, p.Z, p.Weight
	}
	return stat.Mean(xs, ws), stat.Mean(ys, ws), stat.Mean(zs, ws)
}

//Extent returns the largest distance between a cloud point and the centroid, which viewers
//use to scale the cloud representation.
func (C *SFCloud) Extent() float64 {
	cx, cy, cz := C.Centroid()
	var max float64
	for _, p := range C.points {
		d := math.Sqrt((p.X-cx)*(p.X-cx) + (p.Y-cy)*(p.Y-cy) + (p.Z-cz)*(p.Z-cz))
		if d > max {
			max = d
		}
	}
	return max
}

//Cloud is the whole point-cloud representation of a dynophore.
type Cloud struct {
	id            string
	superfeatures []*SFCloud
}

//ID returns the dynophore ID of the cloud
func (C *Cloud) ID() string { return C.id }

//Superfeatures returns the per-superfeature clouds, in file order
func (C *Cloud) Superfeatures() []*SFCloud {
	return append([]*SFCloud{}, C.superfeatures...)
}

//Superfeature returns the cloud of the superfeature with the given ID, or an
//UnknownSelection error if the dynophore has no such cloud.
func (C *Cloud) Superfeature(id string) (*SFCloud, error) {
	for _, v := range C.superfeatures {
		if v.id == id {
			return v, nil
		}
	}
	return nil, Error{"no cloud for superfeature " + id, dyno.UnknownSelection, []string{"Superfeature"}}
}

//the on-disk pml schema

type xmlPoint struct {
	X          float64 `xml:"x3,attr"`
	Y          float64 `xml:"y3,attr"`
	Z          float64 `xml:"z3,attr"`
	Weight     float64 `xml:"weight,attr"`
	FrameIndex int     `xml:"frame_index,attr"`
}

type xmlSuperfeature struct {
	ID     string     `xml:"id,attr"`
	Color  string     `xml:"feature_color,attr"`
	Points []xmlPoint `xml:"additionalPoint"`
}

type xmlDynophore struct {
	ID            string            `xml:"id,attr"`
	Superfeatures []xmlSuperfeature `xml:"superfeature"`
}

//PMLRead reads the point-cloud pml file the dynophore generator writes next to the
//statistics files. It returns an error of kind DataNotFound if the file is absent, or
//MalformedData if it can't be understood.
func PMLRead(path string) (*Cloud, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Error{err.Error(), dyno.DataNotFound, []string{"PMLRead"}}
	}
	defer f.Close()
	var x xmlDynophore
	if err := xml.NewDecoder(f).Decode(&x); err != nil {
		return nil, Error{"can't parse pml: " + err.Error(), dyno.MalformedData, []string{"PMLRead"}}
	}
	if len(x.Superfeatures) == 0 {
		return nil, Error{"pml holds no superfeature clouds", dyno.MalformedData, []string{"PMLRead"}}
	}
	C := new(Cloud)
	C.id = x.ID
	for _, xsf := range x.Superfeatures {
		sfc := &SFCloud{id: xsf.ID, color: xsf.Color}
		for i, xp := range xsf.Points {
			if badCoord(xp.X) || badCoord(xp.Y) || badCoord(xp.Z) || badCoord(xp.Weight) || xp.FrameIndex < 0 {
				return nil, Error{fmt.Sprintf("ill-formed point %d in cloud %s", i, xsf.ID), dyno.MalformedData, []string{"PMLRead"}}
			}
			sfc.points = append(sfc.points, Point{xp.X, xp.Y, xp.Z, xp.Weight, xp.FrameIndex})
		}
		if len(sfc.points) == 0 {
			return nil, Error{"empty cloud for superfeature " + xsf.ID, dyno.MalformedData, []string{"PMLRead"}}
		}
		C.superfeatures = append(C.superfeatures, sfc)
	}
	return C, nil
}

func badCoord(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

//Error is the concrete error type for the cloud package. It fulfills dyno.Error and
//dyno.Kinder.
type Error struct {
	message string
	kind    string
	deco    []string
}

func (err Error) Error() string {
	return fmt.Sprintf("dynophore cloud %s error: %s", err.kind, err.message)
}

//Decorate adds new information to the error
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Kind returns the error kind
func (err Error) Kind() string { return err.kind }
