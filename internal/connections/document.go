// Package connections builds the component connection descriptor consumed by
// the engine: one connection per exported object with its tags, parent, part
// info, animation list and static offset.
package connections

import (
	"encoding/xml"
	"io"
)

// Document is the root of the descriptor.
type Document struct {
	XMLName   xml.Name  `xml:"components"`
	Component Component `xml:"component"`
}

// Component describes the exported ship.
type Component struct {
	Name        string       `xml:"name,attr"`
	Class       string       `xml:"class,attr"`
	Source      Source       `xml:"source"`
	Connections []Connection `xml:"connections>connection"`
}

// Source points at the packed geometry and animation data.
type Source struct {
	Geometry string `xml:"geometry,attr"`
}

// Connection is one exported object.
type Connection struct {
	Name       string      `xml:"name,attr"`
	Tags       string      `xml:"tags,attr"`
	Parent     string      `xml:"parent,attr,omitempty"`
	Value      string      `xml:"value,attr,omitempty"`
	Parts      *Parts      `xml:"parts,omitempty"`
	Animations *Animations `xml:"animations,omitempty"`
	Offset     *Offset     `xml:"offset,omitempty"`
}

// Parts wraps the part of a mesh connection.
type Parts struct {
	Part Part `xml:"part"`
}

// Part describes a mesh: materials of LOD 0 and its bounding size.
type Part struct {
	Name string `xml:"name,attr"`
	LODs []LOD  `xml:"lods>lod"`
	Size Size   `xml:"size"`
}

// LOD is one level of detail.
type LOD struct {
	Index     int        `xml:"index,attr"`
	Materials []Material `xml:"materials>material"`
}

// Material references a material by name; ids start at 1.
type Material struct {
	ID  int    `xml:"id,attr"`
	Ref string `xml:"ref,attr"`
}

// Size is the part bounding box.
type Size struct {
	Max    Vector `xml:"max"`
	Center Vector `xml:"center"`
}

// Vector is a formatted x/y/z triple.
type Vector struct {
	X string `xml:"x,attr"`
	Y string `xml:"y,attr"`
	Z string `xml:"z,attr"`
}

// Animations lists the clips of a connection.
type Animations struct {
	Animation []Animation `xml:"animation"`
}

// Animation is one clip with its frame range.
type Animation struct {
	Name  string `xml:"name,attr"`
	Start int    `xml:"start,attr"`
	End   int    `xml:"end,attr"`
}

// Offset is the static transform of a connection.
type Offset struct {
	Position   *Vector     `xml:"position,omitempty"`
	Quaternion *Quaternion `xml:"quaternion,omitempty"`
}

// Quaternion is a formatted rotation.
type Quaternion struct {
	QX string `xml:"qx,attr"`
	QY string `xml:"qy,attr"`
	QZ string `xml:"qz,attr"`
	QW string `xml:"qw,attr"`
}

// Encode writes the document as indented UTF-8 XML with a declaration.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
