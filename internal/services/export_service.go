package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/schoolit/asset-service/internal/models"
	"github.com/schoolit/asset-service/internal/repositories"
)

// ExportService produces the downloadable inventory spreadsheet for one
// school. Sits behind the submission-files feature gate.
type ExportService interface {
	DeviceInventory(ctx context.Context, schoolID uint) ([]byte, string, error)
}

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var inventoryHeader = []string{
	"Inventarnummer", "Typ", "Hersteller", "Modell", "Seriennummer",
	"Status", "Raum", "Letzte Prüfung",
}

// DeviceInventory renders all devices of the school into an xlsx workbook
// and returns the file bytes plus a suggested filename.
func (s *exportService) DeviceInventory(ctx context.Context, schoolID uint) ([]byte, string, error) {
	school, err := s.repo.School().GetByID(ctx, schoolID)
	if err != nil {
		return nil, "", err
	}

	devices, _, err := s.repo.Device().List(ctx, repositories.DeviceFilters{SchoolID: &schoolID})
	if err != nil {
		return nil, "", err
	}

	rooms, err := s.repo.Classroom().ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, "", err
	}
	roomNames := make(map[uint]string, len(rooms))
	for _, room := range rooms {
		roomNames[room.ID] = room.Name
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventar"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, "", fmt.Errorf("rename sheet: %w", err)
	}

	for col, title := range inventoryHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return nil, "", fmt.Errorf("write header: %w", err)
		}
	}

	for i, device := range devices {
		row := i + 2
		values := []any{
			device.InventoryNo,
			device.Type,
			device.Vendor,
			device.Model,
			deref(device.SerialNo),
			string(device.Status),
			roomName(roomNames, device.ClassroomID),
			inspectionDate(device),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	filename := fmt.Sprintf("inventar_%s.xlsx", school.ShortName)
	s.logger.Info("inventory exported", "school_id", schoolID, "devices", len(devices))
	return buf.Bytes(), filename, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func roomName(names map[uint]string, id *uint) string {
	if id == nil {
		return ""
	}
	return names[*id]
}

func inspectionDate(device *models.Device) string {
	if device.LastInspectedAt == nil {
		return ""
	}
	return device.LastInspectedAt.Format("2006-01-02")
}
