package main

import (
	"encoding/xml"
)

// wire types for the catalogue engine's XML search API.  repeated elements
// decode into slices, so a field that happens to appear once and a field
// that appears many times look the same by the time extraction runs.

type catalogueSubField struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// catalogueDataField is one tagged field of a record.  Exact carries the
// engine's exact-match annotation for the search term; Secondary carries an
// optional trailing fragment the engine splits off the matched text.
type catalogueDataField struct {
	Tag       string              `xml:"tag,attr"`
	Exact     string              `xml:"exact"`
	Secondary string              `xml:"secondary"`
	SubFields []catalogueSubField `xml:"subfield"`
}

type catalogueBranch struct {
	Location     string `xml:"location"`
	Sublocation  string `xml:"sublocation"`
	Status       string `xml:"status"`
	ItemCount    int    `xml:"itemCount"`
	Datasource   string `xml:"datasource"`
	NativeID     string `xml:"nativeId"`
	PlaceHoldURL string `xml:"placeHoldUrl"`
	Notes        string `xml:"notes"`
}

// catalogueBranchList carries the true holding count in its total attribute;
// the branch list itself may be longer than what we display.
type catalogueBranchList struct {
	Total    int               `xml:"total,attr"`
	Branches []catalogueBranch `xml:"branch"`
}

type catalogueXMLRecord struct {
	ID          string               `xml:"id"`
	ContentType string               `xml:"contentType"`
	DataFields  []catalogueDataField `xml:"datafield"`
	Branches    *catalogueBranchList `xml:"branches"`
	Thumbnails  []string             `xml:"thumbnails>thumbnail"`
	Links       []string             `xml:"links>link"`
}

type cataloguePager struct {
	Page         int `xml:"page"`
	TotalPages   int `xml:"totalPages"`
	TotalResults int `xml:"totalResults"`
}

type catalogueFacetValue struct {
	Label string `xml:"label"`
	Count int    `xml:"count"`
}

type catalogueFacetBlock struct {
	Label  string                `xml:"label,attr"`
	Total  int                   `xml:"total,attr"`
	Values []catalogueFacetValue `xml:"value"`
}

type catalogueEmbeddedError struct {
	Code    int    `xml:"code"`
	Message string `xml:"message"`
}

// catalogueResponse is a catch-all for search and detail responses
type catalogueResponse struct {
	XMLName    xml.Name                `xml:"searchResponse"`
	Error      *catalogueEmbeddedError `xml:"error"`
	Pager      *cataloguePager         `xml:"pager"`
	Facets     []catalogueFacetBlock   `xml:"facets>facet"`
	DidYouMean []string                `xml:"didYouMean>term"`
	Records    []catalogueXMLRecord    `xml:"records>record"`
}

func (r *catalogueXMLRecord) fieldByTag(tag string) *catalogueDataField {
	for i := range r.DataFields {
		if r.DataFields[i].Tag == tag {
			return &r.DataFields[i]
		}
	}

	return nil
}

func (r *catalogueXMLRecord) fieldsByTag(tag string) []*catalogueDataField {
	var fields []*catalogueDataField

	for i := range r.DataFields {
		if r.DataFields[i].Tag == tag {
			fields = append(fields, &r.DataFields[i])
		}
	}

	return fields
}
