package db

import (
	"context"
	"errors"
	"fmt"
	"video-metadata-api/models"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

var (
	ErrVideoNotFound = errors.New("video not found")
	ErrVideoExists   = errors.New("video id already exists")
)

// VideoStore accede a la tabla de videos. Cada operación corre en su propia
// transacción: una lectura y como mucho una escritura.
type VideoStore struct {
	db *gorm.DB
}

// NewVideoStore envuelve una conexión GORM ya abierta
func NewVideoStore(conn *gorm.DB) *VideoStore {
	return &VideoStore{db: conn}
}

// Get devuelve el video con ese id o ErrVideoNotFound
func (s *VideoStore) Get(ctx context.Context, id int64) (models.Video, error) {
	var video models.Video
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&video).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Video{}, ErrVideoNotFound
	}
	if err != nil {
		return models.Video{}, fmt.Errorf("getting video %d: %w", id, err)
	}
	return video, nil
}

// Create inserta el video con el id que trae. Si el id ya está ocupado
// devuelve ErrVideoExists y no modifica la fila existente.
func (s *VideoStore) Create(ctx context.Context, video models.Video) (models.Video, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := videoExists(tx, video.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrVideoExists
		}
		return tx.Create(&video).Error
	})
	if err != nil {
		if errors.Is(err, ErrVideoExists) || isPrimaryKeyViolation(err) {
			return models.Video{}, ErrVideoExists
		}
		return models.Video{}, fmt.Errorf("creating video %d: %w", video.ID, err)
	}
	return video, nil
}

// Update aplica solo los campos presentes en el patch y devuelve la fila resultante
func (s *VideoStore) Update(ctx context.Context, id int64, patch models.VideoPatch) (models.Video, error) {
	var video models.Video
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Take(&video).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVideoNotFound
			}
			return err
		}
		if patch.Empty() {
			return nil
		}
		if err := tx.Model(&models.Video{}).Where("id = ?", id).Updates(patch.Columns()).Error; err != nil {
			return err
		}
		applyPatch(&video, patch)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return models.Video{}, err
		}
		return models.Video{}, fmt.Errorf("updating video %d: %w", id, err)
	}
	return video, nil
}

// Delete borra el video o devuelve ErrVideoNotFound si no existe
func (s *VideoStore) Delete(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Video{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVideoNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return err
		}
		return fmt.Errorf("deleting video %d: %w", id, err)
	}
	return nil
}

// Ping comprueba que la base de datos responde
func (s *VideoStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func videoExists(tx *gorm.DB, id int64) (bool, error) {
	var count int64
	if err := tx.Model(&models.Video{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func applyPatch(video *models.Video, patch models.VideoPatch) {
	if patch.Name != nil {
		video.Name = *patch.Name
	}
	if patch.Views != nil {
		video.Views = *patch.Views
	}
	if patch.Likes != nil {
		video.Likes = *patch.Likes
	}
}

func isPrimaryKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
