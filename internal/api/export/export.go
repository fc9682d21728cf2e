// Package export serializes product sets for the read-only XML and JSON
// endpoints. Both formats wrap every product in an envelope naming the model
// and primary key, with the remaining columns under "fields".
package export

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/kki/product-catalog/internal/core/domain"
)

const (
	modelLabel = "main.product"
	userModel  = "auth.user"
	xmlVersion = "1.0"
)

type jsonFields struct {
	User        string `json:"user"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

type jsonObject struct {
	Model  string     `json:"model"`
	PK     string     `json:"pk"`
	Fields jsonFields `json:"fields"`
}

// JSON encodes products as a JSON array. An empty set encodes as [].
func JSON(products []*domain.Product) ([]byte, error) {
	objects := make([]jsonObject, 0, len(products))
	for _, p := range products {
		objects = append(objects, jsonObject{
			Model: modelLabel,
			PK:    p.ID,
			Fields: jsonFields{
				User:        p.UserID,
				Name:        p.Name,
				Price:       p.Price,
				Description: p.Description,
			},
		})
	}

	b, err := json.Marshal(objects)
	if err != nil {
		return nil, fmt.Errorf("export json: %w", err)
	}
	return b, nil
}

type xmlField struct {
	Name  string `xml:"name,attr"`
	Rel   string `xml:"rel,attr,omitempty"`
	To    string `xml:"to,attr,omitempty"`
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlObject struct {
	Model  string     `xml:"model,attr"`
	PK     string     `xml:"pk,attr"`
	Fields []xmlField `xml:"field"`
}

type xmlDocument struct {
	XMLName xml.Name    `xml:"django-objects"`
	Version string      `xml:"version,attr"`
	Objects []xmlObject `xml:"object"`
}

// XML encodes products as an XML document with a declaration. An empty set
// yields the root element with no children.
func XML(products []*domain.Product) ([]byte, error) {
	doc := xmlDocument{Version: xmlVersion, Objects: make([]xmlObject, 0, len(products))}
	for _, p := range products {
		doc.Objects = append(doc.Objects, xmlObject{
			Model: modelLabel,
			PK:    p.ID,
			Fields: []xmlField{
				{Name: "user", Rel: "ManyToOneRel", To: userModel, Value: p.UserID},
				{Name: "name", Type: "CharField", Value: p.Name},
				{Name: "price", Type: "IntegerField", Value: strconv.Itoa(p.Price)},
				{Name: "description", Type: "TextField", Value: p.Description},
			},
		})
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export xml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
