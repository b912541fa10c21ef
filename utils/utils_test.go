package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleForm struct {
	PONumber string `form:"po_number"`
	POL      string `form:"pol,omitempty"`
	Remark   string `form:"remark"`
	Token    string `form:"-"`
	Count    int    `form:"count"`
	hidden   string
}

func TestNormalizeDTOTrimsStrings(t *testing.T) {
	f := sampleForm{PONumber: "  PO1 ", POL: "\tShanghai\n", Count: 3}
	NormalizeDTO(&f)

	assert.Equal(t, "PO1", f.PONumber)
	assert.Equal(t, "Shanghai", f.POL)
	assert.Equal(t, 3, f.Count)
}

func TestNormalizeDTOIgnoresNonPointers(t *testing.T) {
	f := sampleForm{PONumber: " x "}
	NormalizeDTO(f)
	assert.Equal(t, " x ", f.PONumber)
}

func TestUpdatesFromDTOKeepsEmptyValues(t *testing.T) {
	f := sampleForm{PONumber: "PO1", Token: "abc", hidden: "h"}
	got := UpdatesFromDTO(&f)

	assert.Equal(t, map[string]any{
		"po_number": "PO1",
		"pol":       "",
		"remark":    "",
	}, got)
}
