package repository

import (
	"errors"
	"time"

	"backend/internal/app/ds"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Методы для работы с заказ-нарядами

type JobFilter struct {
	Status     ds.JobStatus
	CustomerID uint
	VehicleID  uint
	DateFrom   *time.Time
	DateTo     *time.Time
}

func (r *Repository) GetJobs(filter JobFilter) ([]ds.Job, error) {
	var jobs []ds.Job
	q := r.db.Preload("Customer").Preload("Vehicle").Order("created_at DESC")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != 0 {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.VehicleID != 0 {
		q = q.Where("vehicle_id = ?", filter.VehicleID)
	}
	if filter.DateFrom != nil {
		q = q.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		q = q.Where("created_at <= ?", *filter.DateTo)
	}

	err := q.Find(&jobs).Error
	return jobs, err
}

func (r *Repository) GetJobByID(id uint) (*ds.Job, error) {
	var job ds.Job
	err := r.db.Preload("Customer").Preload("Vehicle").First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetJobServices возвращает услуги, выполненные по заказ-наряду
func (r *Repository) GetJobServices(jobID uint) ([]ds.Service, error) {
	var links []ds.JobService
	if err := r.db.Where("job_id = ?", jobID).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []ds.Service{}, nil
	}

	serviceIDs := make([]uint, 0, len(links))
	for _, l := range links {
		serviceIDs = append(serviceIDs, l.ServiceID)
	}

	var services []ds.Service
	err := r.db.Where("id IN ?", serviceIDs).Find(&services).Error
	return services, err
}

// CreateJob создаёт заказ-наряд вместе со связями на услуги одной транзакцией.
// Если totalAmount нулевой, сумма берётся из прайса выбранных услуг.
func (r *Repository) CreateJob(vehicleID, customerID uint, serviceIDs []uint,
	totalAmount, paidAmount decimal.Decimal, method ds.PaymentMethod, status ds.JobStatus, notes *string) (*ds.Job, error) {

	var job ds.Job

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var services []ds.Service
		if len(serviceIDs) > 0 {
			if err := tx.Where("id IN ?", serviceIDs).Find(&services).Error; err != nil {
				return err
			}
			if len(services) != len(serviceIDs) {
				return errors.New("одна из услуг не найдена")
			}
		}

		if totalAmount.IsZero() {
			for _, s := range services {
				totalAmount = totalAmount.Add(s.Price)
			}
		}

		job = ds.Job{
			VehicleID:     vehicleID,
			CustomerID:    customerID,
			TotalAmount:   totalAmount,
			PaidAmount:    paidAmount,
			PaymentMethod: method,
			Status:        status,
			Notes:         notes,
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&job).Error; err != nil {
			return err
		}

		for _, s := range services {
			link := ds.JobService{JobID: job.ID, ServiceID: s.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &job, nil
}

// UpdateJob обновляет только переданные поля
func (r *Repository) UpdateJob(id uint, totalAmount, paidAmount *decimal.Decimal,
	method *ds.PaymentMethod, status *ds.JobStatus, notes *string) error {

	updates := map[string]interface{}{}
	if totalAmount != nil {
		updates["total_amount"] = *totalAmount
	}
	if paidAmount != nil {
		updates["paid_amount"] = *paidAmount
	}
	if method != nil {
		updates["payment_method"] = *method
	}
	if status != nil {
		updates["status"] = *status
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&ds.Job{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteJob удаляет заказ-наряд: сначала связи на услуги, затем сам заказ
func (r *Repository) DeleteJob(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&ds.JobService{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&ds.Job{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("заказ-наряд не найден")
		}
		return nil
	})
}

// AddServiceToJob добавляет услугу в заказ-наряд
func (r *Repository) AddServiceToJob(jobID, serviceID uint) error {
	link := ds.JobService{JobID: jobID, ServiceID: serviceID}
	return r.db.Create(&link).Error
}

// RemoveServiceFromJob удаляет услугу из заказ-наряда
func (r *Repository) RemoveServiceFromJob(jobID, serviceID uint) error {
	result := r.db.Where("job_id = ? AND service_id = ?", jobID, serviceID).Delete(&ds.JobService{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("услуга не привязана к заказ-наряду")
	}
	return nil
}

func (r *Repository) JobExists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.Job{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// JobsBetween возвращает заказ-наряды за период (границы включительно)
func (r *Repository) JobsBetween(from, to time.Time) ([]ds.Job, error) {
	var jobs []ds.Job
	err := r.db.Where("created_at >= ? AND created_at <= ?", from, to).Find(&jobs).Error
	return jobs, err
}

// AllJobs возвращает все заказ-наряды без фильтров (для статистики по способам оплаты)
func (r *Repository) AllJobs() ([]ds.Job, error) {
	var jobs []ds.Job
	err := r.db.Find(&jobs).Error
	return jobs, err
}

// JobServiceLinks возвращает все связи заказ-услуга (для отчёта популярности)
func (r *Repository) JobServiceLinks() ([]ds.JobService, error) {
	var links []ds.JobService
	err := r.db.Find(&links).Error
	return links, err
}
