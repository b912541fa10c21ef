package models

import "time"

// Column describes one tracked order field and the spreadsheet header it maps to.
// Headers must match the upload template exactly, embedded line breaks included.
type Column struct {
	Name   string // db column and form field name
	Header string
	Size   int
}

// RemarkColumn is exported after the tracked columns but never counted as missing.
var RemarkColumn = Column{Name: "remark", Header: "Remark", Size: 500}

// Columns lists the 17 tracked fields in spreadsheet order.
var Columns = []Column{
	{Name: "input_number", Header: "#\n输入序号", Size: 100},
	{Name: "supplier_shipper", Header: "SUPPLIER/SHIPPER\n发货人", Size: 200},
	{Name: "po_number", Header: "PO#\n订单号", Size: 100},
	{Name: "material_code", Header: "Material Code\nSAP料号", Size: 100},
	{Name: "bom_material_name", Header: "BOM\n物料名称", Size: 200},
	{Name: "material_size", Header: "Material Size\n型号/规格/尺寸", Size: 200},
	{Name: "quantity", Header: "Quantity\n数量", Size: 100},
	{Name: "unit", Header: "UNIT\n单位", Size: 50},
	{Name: "mbl_number", Header: "MBL# / MAWB#\n船东提单号", Size: 100},
	{Name: "container_count", Header: "柜子数", Size: 50},
	{Name: "container_number", Header: "CNTR#\n柜号", Size: 100},
	{Name: "hbl_number", Header: "HBL#\n提单号", Size: 100},
	{Name: "pol", Header: "POL\n起运港", Size: 100},
	{Name: "etd", Header: "ETD\n开船日", Size: 100},
	{Name: "pod", Header: "POD\n目的港", Size: 100},
	{Name: "pod_eta", Header: "POD ETA\n实际到港日期", Size: 100},
	{Name: "estimated_delivery_date", Header: "EST. DELIVERY DATE\n预估到厂日", Size: 100},
}

// Order is one shipment row. All text columns are NOT NULL with an empty default.
type Order struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	InputNumber           string    `json:"input_number" gorm:"size:100;not null;default:''"`
	SupplierShipper       string    `json:"supplier_shipper" gorm:"size:200;not null;default:''"`
	PONumber              string    `json:"po_number" gorm:"column:po_number;size:100;not null;default:''"`
	MaterialCode          string    `json:"material_code" gorm:"size:100;not null;default:''"`
	BOMMaterialName       string    `json:"bom_material_name" gorm:"column:bom_material_name;size:200;not null;default:''"`
	MaterialSize          string    `json:"material_size" gorm:"size:200;not null;default:''"`
	Quantity              string    `json:"quantity" gorm:"size:100;not null;default:''"`
	Unit                  string    `json:"unit" gorm:"size:50;not null;default:''"`
	MBLNumber             string    `json:"mbl_number" gorm:"column:mbl_number;size:100;not null;default:''"`
	ContainerCount        string    `json:"container_count" gorm:"size:50;not null;default:''"`
	ContainerNumber       string    `json:"container_number" gorm:"size:100;not null;default:''"`
	HBLNumber             string    `json:"hbl_number" gorm:"column:hbl_number;size:100;not null;default:''"`
	POL                   string    `json:"pol" gorm:"column:pol;size:100;not null;default:''"`
	ETD                   string    `json:"etd" gorm:"column:etd;size:100;not null;default:''"`
	POD                   string    `json:"pod" gorm:"column:pod;size:100;not null;default:''"`
	PODETA                string    `json:"pod_eta" gorm:"column:pod_eta;size:100;not null;default:''"`
	EstimatedDeliveryDate string    `json:"estimated_delivery_date" gorm:"size:100;not null;default:''"`
	Remark                string    `json:"remark" gorm:"size:500;not null;default:''"`
	CreatedAt             time.Time `json:"created_at" gorm:"index"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// IsMissing reports whether a stored value counts as missing: exactly "" or exactly "0".
func IsMissing(v string) bool {
	return v == "" || v == "0"
}

// IsTracked reports whether name is one of the 17 tracked columns.
func IsTracked(name string) bool {
	for _, col := range Columns {
		if col.Name == name {
			return true
		}
	}
	return false
}

func (o *Order) field(name string) *string {
	switch name {
	case "input_number":
		return &o.InputNumber
	case "supplier_shipper":
		return &o.SupplierShipper
	case "po_number":
		return &o.PONumber
	case "material_code":
		return &o.MaterialCode
	case "bom_material_name":
		return &o.BOMMaterialName
	case "material_size":
		return &o.MaterialSize
	case "quantity":
		return &o.Quantity
	case "unit":
		return &o.Unit
	case "mbl_number":
		return &o.MBLNumber
	case "container_count":
		return &o.ContainerCount
	case "container_number":
		return &o.ContainerNumber
	case "hbl_number":
		return &o.HBLNumber
	case "pol":
		return &o.POL
	case "etd":
		return &o.ETD
	case "pod":
		return &o.POD
	case "pod_eta":
		return &o.PODETA
	case "estimated_delivery_date":
		return &o.EstimatedDeliveryDate
	case "remark":
		return &o.Remark
	}
	return nil
}

// Value returns the field stored under a column name, or "" for unknown names.
func (o Order) Value(name string) string {
	if p := o.field(name); p != nil {
		return *p
	}
	return ""
}

// SetValue assigns a field by column name. Unknown names are ignored.
func (o *Order) SetValue(name, v string) {
	if p := o.field(name); p != nil {
		*p = v
	}
}

// MissingAny reports whether any tracked field of the order is missing.
func (o Order) MissingAny() bool {
	for _, col := range Columns {
		if IsMissing(o.Value(col.Name)) {
			return true
		}
	}
	return false
}
