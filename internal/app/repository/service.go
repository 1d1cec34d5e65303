package repository

import (
	"errors"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
)

// Методы для работы с каталогом услуг

func (r *Repository) GetAllServices() ([]ds.Service, error) {
	var services []ds.Service
	err := r.db.Order("id").Find(&services).Error
	return services, err
}

func (r *Repository) SearchServicesByName(name string) ([]ds.Service, error) {
	var services []ds.Service
	err := r.db.Where("name ILIKE ?", "%"+name+"%").Order("id").Find(&services).Error
	return services, err
}

func (r *Repository) GetServiceByID(id uint) (*ds.Service, error) {
	var service ds.Service
	err := r.db.First(&service, id).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *Repository) CreateService(name string, price decimal.Decimal, description *string) (*ds.Service, error) {
	service := ds.Service{
		Name:        name,
		Price:       price,
		Description: description,
	}

	err := r.db.Create(&service).Error
	if err != nil {
		return nil, err
	}

	return &service, nil
}

// UpdateService обновляет только переданные поля
func (r *Repository) UpdateService(id uint, name *string, price *decimal.Decimal, description *string) error {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if price != nil {
		updates["price"] = *price
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Service{}).Where("id = ?", id).Updates(updates).Error
}

func (r *Repository) UpdateServiceImage(id uint, imageURL string) error {
	return r.db.Model(&ds.Service{}).Where("id = ?", id).Update("image_url", imageURL).Error
}

func (r *Repository) DeleteService(id uint) error {
	var linkCount int64
	if err := r.db.Model(&ds.JobService{}).Where("service_id = ?", id).Count(&linkCount).Error; err != nil {
		return err
	}
	if linkCount > 0 {
		return errors.New("услуга используется в заказ-нарядах и не может быть удалена")
	}

	result := r.db.Delete(&ds.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("услуга не найдена")
	}
	return nil
}

func (r *Repository) ServiceExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Service{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ServiceNames возвращает имена всех услуг по их ID (для отчёта популярности)
func (r *Repository) ServiceNames() (map[uint]string, error) {
	var services []ds.Service
	if err := r.db.Select("id", "name").Find(&services).Error; err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(services))
	for _, s := range services {
		names[s.ID] = s.Name
	}
	return names, nil
}
