package delete_equipment

import "context"

type EquipmentService interface {
	Delete(ctx context.Context, ownerID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
