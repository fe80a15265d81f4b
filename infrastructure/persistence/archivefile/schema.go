package archivefile

import "encoding/xml"

// On-disk layout of a model archive

type xmlModel struct {
	XMLName    xml.Name      `xml:"model"`
	ID         string        `xml:"id,attr"`
	Name       string        `xml:"name,attr"`
	Version    string        `xml:"version,attr,omitempty"`
	Purpose    string        `xml:"purpose,omitempty"`
	Folders    []xmlFolder   `xml:"folder"`
	Properties []xmlProperty `xml:"property"`
	Features   []xmlFeature  `xml:"feature"`
}

type xmlFolder struct {
	Type     string       `xml:"type,attr"`
	Name     string       `xml:"name,attr"`
	Elements []xmlConcept `xml:"element"`
	Views    []xmlView    `xml:"view"`
}

type xmlConcept struct {
	ID             string        `xml:"id,attr"`
	Type           string        `xml:"type,attr"`
	Name           string        `xml:"name,attr,omitempty"`
	Source         string        `xml:"source,attr,omitempty"`
	Target         string        `xml:"target,attr,omitempty"`
	Specialization string        `xml:"specialization,attr,omitempty"`
	Documentation  string        `xml:"documentation,omitempty"`
	Properties     []xmlProperty `xml:"property"`
}

type xmlProperty struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

type xmlFeature struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type xmlView struct {
	ID            string     `xml:"id,attr"`
	Name          string     `xml:"name,attr"`
	Documentation string     `xml:"documentation,omitempty"`
	Children      []xmlChild `xml:"child"`
}

type xmlChild struct {
	ID         string     `xml:"id,attr"`
	Type       string     `xml:"type,attr"`
	Name       string     `xml:"name,attr,omitempty"`
	ConceptRef string     `xml:"conceptRef,attr,omitempty"`
	ImagePath  string     `xml:"imagePath,attr,omitempty"`
	Children   []xmlChild `xml:"child"`
}
