package search_equipment

import (
	"net/url"
	"strconv"

	"github.com/m04kA/EquipShare-BookingService/internal/service/equipment/models"
	"github.com/m04kA/EquipShare-BookingService/pkg/ptr"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(query url.Values) (*models.SearchRequest, error) {
	req := &models.SearchRequest{
		Query: query.Get("q"),
		Sort:  query.Get("sort"),
	}

	if raw := query.Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CategoryID = ptr.Ptr(categoryID)
	}

	return req, nil
}
