package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMissing(t *testing.T) {
	assert.True(t, IsMissing(""))
	assert.True(t, IsMissing("0"))
	assert.False(t, IsMissing(" "))
	assert.False(t, IsMissing("00"))
	assert.False(t, IsMissing("0.0"))
	assert.False(t, IsMissing("PO123"))
}

func TestColumnsTable(t *testing.T) {
	require.Len(t, Columns, 17)

	seen := map[string]bool{}
	for _, col := range Columns {
		assert.False(t, seen[col.Name], "duplicate column %s", col.Name)
		seen[col.Name] = true
		assert.Positive(t, col.Size)
		assert.NotEmpty(t, col.Header)
		assert.True(t, IsTracked(col.Name))
	}

	assert.Equal(t, "PO#\n订单号", Columns[2].Header)
	assert.Equal(t, "柜子数", Columns[9].Header)
	assert.False(t, IsTracked(RemarkColumn.Name))
	assert.False(t, IsTracked("id"))
}

func TestValueAndSetValue(t *testing.T) {
	var o Order
	for _, col := range Columns {
		o.SetValue(col.Name, "v_"+col.Name)
	}
	o.SetValue("remark", "note")
	o.SetValue("unknown", "ignored")

	for _, col := range Columns {
		assert.Equal(t, "v_"+col.Name, o.Value(col.Name))
	}
	assert.Equal(t, "v_po_number", o.PONumber)
	assert.Equal(t, "v_pod_eta", o.PODETA)
	assert.Equal(t, "note", o.Value("remark"))
	assert.Equal(t, "", o.Value("unknown"))
}

func TestMissingAny(t *testing.T) {
	var o Order
	for _, col := range Columns {
		o.SetValue(col.Name, "x")
	}
	assert.False(t, o.MissingAny())

	o.Remark = ""
	assert.False(t, o.MissingAny(), "remark is not tracked")

	o.ContainerCount = "0"
	assert.True(t, o.MissingAny())
}

func TestUserPassword(t *testing.T) {
	u := User{Username: "admin", Role: RoleAdmin}
	require.NoError(t, u.SetPassword("admin123"))

	assert.False(t, strings.Contains(string(u.Password), "admin123"))
	assert.NoError(t, u.ComparePassword("admin123"))
	assert.Error(t, u.ComparePassword("wrong"))
	assert.True(t, u.IsAdmin())
	other := User{Role: RoleUser}
	assert.False(t, other.IsAdmin())
}
