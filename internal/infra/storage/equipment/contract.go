package equipment

import (
	"github.com/m04kA/EquipShare-BookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
