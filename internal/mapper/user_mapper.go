package mapper

import (
	"firecheck-be/internal/entity"
	"firecheck-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(row *model.User) *entity.User {
	if row == nil {
		return nil
	}
	return &entity.User{
		Id:           row.Id,
		StationId:    row.StationId,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    nonZeroTime(row.UpdatedAt),
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	row := &model.User{
		Id:           u.Id,
		StationId:    u.StationId,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
	}
	if u.UpdatedAt != nil {
		row.UpdatedAt = *u.UpdatedAt
	}
	return row
}
