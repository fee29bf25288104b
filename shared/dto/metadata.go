package dto

import (
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

// Metadata is the audit timestamps of a stored row, rendered in the application timezone.
type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	m.CreatedAt = timezone.Format(meta.CreatedAt, constant.DateFormat)
	m.UpdatedAt = timezone.Format(meta.UpdatedAt, constant.DateFormat)
}
