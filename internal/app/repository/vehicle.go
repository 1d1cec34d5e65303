package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"
)

// Методы для работы с автомобилями

func (r *Repository) GetVehicles(customerID uint, search string) ([]ds.Vehicle, error) {
	var vehicles []ds.Vehicle
	q := r.db.Preload("Customer").Order("created_at DESC")
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	if search != "" {
		q = q.Where("plate ILIKE ? OR brand ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	err := q.Find(&vehicles).Error
	return vehicles, err
}

func (r *Repository) GetVehicleByID(id uint) (*ds.Vehicle, error) {
	var vehicle ds.Vehicle
	err := r.db.Preload("Customer").First(&vehicle, id).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *Repository) GetVehicleByPlate(plate string) (*ds.Vehicle, error) {
	var vehicle ds.Vehicle
	err := r.db.Preload("Customer").Where("plate = ?", plate).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *Repository) CreateVehicle(plate, brand string, model, color *string, customerID uint) (*ds.Vehicle, error) {
	vehicle := ds.Vehicle{
		Plate:      plate,
		Brand:      brand,
		Model:      model,
		Color:      color,
		CustomerID: customerID,
		CreatedAt:  time.Now(),
	}

	err := r.db.Create(&vehicle).Error
	if err != nil {
		return nil, err
	}

	return &vehicle, nil
}

// UpdateVehicle обновляет только переданные поля
func (r *Repository) UpdateVehicle(id uint, plate, brand, model, color *string, customerID *uint) error {
	updates := map[string]interface{}{}
	if plate != nil {
		updates["plate"] = *plate
	}
	if brand != nil {
		updates["brand"] = *brand
	}
	if model != nil {
		updates["model"] = *model
	}
	if color != nil {
		updates["color"] = *color
	}
	if customerID != nil {
		updates["customer_id"] = *customerID
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Vehicle{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteVehicle отказывает в удалении, пока на автомобиль ссылаются заказ-наряды
func (r *Repository) DeleteVehicle(id uint) error {
	var jobCount int64
	if err := r.db.Model(&ds.Job{}).Where("vehicle_id = ?", id).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount > 0 {
		return ErrHasDependentJobs
	}

	result := r.db.Delete(&ds.Vehicle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("автомобиль не найден")
	}
	return nil
}

func (r *Repository) VehicleExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Vehicle{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
