package models

// Field-name translation between the wire (camelCase) and storage
// (snake_case) conventions. The Gateway is the single translation point;
// every defined field of Shipment, Profile and UserRole must appear here
// so the mapping stays total and lossless in both directions.

var shipmentWireToColumn = map[string]string{
	"id":                "id",
	"trackingNumber":    "tracking_number",
	"origin":            "origin",
	"destination":       "destination",
	"status":            "status",
	"carrier":           "carrier",
	"weight":            "weight",
	"dimensions":        "dimensions",
	"estimatedDelivery": "estimated_delivery",
	"actualDelivery":    "actual_delivery",
	"shipper":           "shipper",
	"consignee":         "consignee",
	"customerName":      "customer_name",
	"customerEmail":     "customer_email",
	"customerPhone":     "customer_phone",
	"priority":          "priority",
	"type":              "type",
	"cost":              "cost",
	"notes":             "notes",
	"createdBy":         "created_by",
	"createdAt":         "created_at",
	"updatedAt":         "updated_at",
}

var profileWireToColumn = map[string]string{
	"id":        "id",
	"email":     "email",
	"fullName":  "full_name",
	"avatarUrl": "avatar_url",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

var userRoleWireToColumn = map[string]string{
	"id":        "id",
	"userId":    "user_id",
	"role":      "role",
	"createdAt": "created_at",
}

var shipmentColumnToWire = reverse(shipmentWireToColumn)
var profileColumnToWire = reverse(profileWireToColumn)
var userRoleColumnToWire = reverse(userRoleWireToColumn)

func reverse(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for wire, col := range m {
		out[col] = wire
	}
	return out
}

// ShipmentColumnForWire translates a wire field name to its storage
// column. Unknown names return ok=false.
func ShipmentColumnForWire(field string) (string, bool) {
	col, ok := shipmentWireToColumn[field]
	return col, ok
}

// ShipmentWireForColumn translates a storage column to its wire field
func ShipmentWireForColumn(col string) (string, bool) {
	field, ok := shipmentColumnToWire[col]
	return field, ok
}

// ProfileColumnForWire translates a profile wire field to its column
func ProfileColumnForWire(field string) (string, bool) {
	col, ok := profileWireToColumn[field]
	return col, ok
}

// ProfileWireForColumn translates a profile column to its wire field
func ProfileWireForColumn(col string) (string, bool) {
	field, ok := profileColumnToWire[col]
	return field, ok
}

// UserRoleColumnForWire translates a role wire field to its column
func UserRoleColumnForWire(field string) (string, bool) {
	col, ok := userRoleWireToColumn[field]
	return col, ok
}

// UserRoleWireForColumn translates a role column to its wire field
func UserRoleWireForColumn(col string) (string, bool) {
	field, ok := userRoleColumnToWire[col]
	return field, ok
}

// ShipmentWireFields lists every defined wire field name of Shipment
func ShipmentWireFields() []string {
	fields := make([]string, 0, len(shipmentWireToColumn))
	for f := range shipmentWireToColumn {
		fields = append(fields, f)
	}
	return fields
}
