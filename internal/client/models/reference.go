// Package models defines the backend entities the client works with. All of
// them are owned by the backend; the client only holds transient copies.
package models

// Tag labels documents. Color is a CSS-style string such as "#a6cee3".
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type DocumentType struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

type Correspondent struct {
	ID   int    `json:"id"`
	Name string `json:"name" validate:"required"`
}

// Reference is implemented by every entity a document points at by id.
type Reference interface {
	RefID() int
	RefName() string
}

func (t Tag) RefID() int      { return t.ID }
func (t Tag) RefName() string { return t.Name }

func (d DocumentType) RefID() int      { return d.ID }
func (d DocumentType) RefName() string { return d.Name }

func (c Correspondent) RefID() int      { return c.ID }
func (c Correspondent) RefName() string { return c.Name }
