package service

import (
	"context"

	"firecheck-be/internal/dto"
	"firecheck-be/internal/repository/specification"
	"firecheck-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// IUnitService serves the apparatus manifest: the units of a station and the
// compartment-by-compartment breakdown an inspection walks through.
type IUnitService interface {
	GetAll(ctx context.Context, stationId uuid.UUID) ([]*dto.UnitResponse, error)
	Show(ctx context.Context, stationId, unitId uuid.UUID) (*dto.UnitDetailResponse, error)
}

type unitService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUnitService(uowFactory unitofwork.RepositoryFactory) IUnitService {
	return &unitService{uowFactory: uowFactory}
}

func (s *unitService) GetAll(ctx context.Context, stationId uuid.UUID) ([]*dto.UnitResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	units, err := uow.UnitRepository().FindAll(ctx,
		specification.ByStationID{StationID: stationId},
		specification.OrderBy{Field: "call_sign"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UnitResponse, 0, len(units))
	for _, unit := range units {
		equipmentCount, err := uow.EquipmentItemRepository().CountByUnit(ctx, unit.Id)
		if err != nil {
			return nil, err
		}
		consumableCount, err := uow.ConsumableStockRepository().CountByUnit(ctx, unit.Id)
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.UnitResponse{
			Id:        unit.Id,
			StationId: unit.StationId,
			Name:      unit.Name,
			CallSign:  unit.CallSign,
			UnitType:  unit.UnitType,
			InService: unit.InService,
			ItemCount: equipmentCount + consumableCount,
		})
	}
	return result, nil
}

func (s *unitService) Show(ctx context.Context, stationId, unitId uuid.UUID) (*dto.UnitDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	unit, err := uow.UnitRepository().FindOne(ctx,
		specification.ByID{ID: unitId},
		specification.ByStationID{StationID: stationId},
	)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, ErrNotFound
	}

	subLocations, err := uow.SubLocationRepository().FindAll(ctx,
		specification.ByUnitID{UnitID: unitId},
		specification.OrderBy{Field: "position"},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.UnitDetailResponse{
		Id:           unit.Id,
		StationId:    unit.StationId,
		Name:         unit.Name,
		CallSign:     unit.CallSign,
		UnitType:     unit.UnitType,
		InService:    unit.InService,
		SubLocations: make([]dto.SubLocationResponse, 0, len(subLocations)),
	}

	for _, sub := range subLocations {
		subRes := dto.SubLocationResponse{
			Id:          sub.Id,
			Name:        sub.Name,
			Position:    sub.Position,
			Equipment:   make([]dto.EquipmentResponse, 0),
			Consumables: make([]dto.ConsumableResponse, 0),
		}

		equipment, err := uow.EquipmentItemRepository().FindAll(ctx, specification.BySubLocationID{SubLocationID: sub.Id})
		if err != nil {
			return nil, err
		}
		for _, item := range equipment {
			subRes.Equipment = append(subRes.Equipment, dto.EquipmentResponse{
				Id:           item.Id,
				Name:         item.Name,
				SerialNumber: item.SerialNumber,
				Category:     item.Category,
			})
		}

		consumables, err := uow.ConsumableStockRepository().FindAll(ctx, specification.BySubLocationID{SubLocationID: sub.Id})
		if err != nil {
			return nil, err
		}
		for _, stock := range consumables {
			subRes.Consumables = append(subRes.Consumables, dto.ConsumableResponse{
				Id:          stock.Id,
				Name:        stock.Name,
				ExpectedQty: stock.ExpectedQty,
				MinimumQty:  stock.MinimumQty,
				Uom:         stock.Uom,
			})
		}

		res.SubLocations = append(res.SubLocations, subRes)
	}

	return res, nil
}
