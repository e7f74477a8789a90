package model

import "roomdesk/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldName        = "name"
	FieldAccessGroup = "access_group"
	FieldCapacity    = "capacity"
	FieldActive      = "active"
)

type Room struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	AccessGroup string `db:"access_group"`
	Capacity    int    `db:"capacity"`
	Active      bool   `db:"active"`
	model.Metadata
}
