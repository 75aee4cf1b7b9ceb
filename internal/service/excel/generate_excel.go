package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"flotilla-golang/internal/service/report"
)

type ReportGenerator interface {
	Generate(ctx context.Context, p report.Params) (*report.Response, error)
}

type GenerateExcelService struct {
	reports ReportGenerator
}

func NewGenerateService(reports ReportGenerator) *GenerateExcelService {
	return &GenerateExcelService{reports: reports}
}

// GenerateExcel corre el mismo reporte que el endpoint JSON y lo vuelca a un
// libro: hoja de resumen por planta y hoja de detalle por equipo.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, p report.Params) ([]byte, error) {
	rep, err := g.reports.Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("fetch data: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Resumen"
	f.SetSheetName("Sheet1", summarySheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	// --- hoja de resumen: totales + por planta ---
	f.SetCellValue(summarySheet, "A1", "Ventana")
	f.SetCellValue(summarySheet, "B1", fmt.Sprintf("%s — %s", p.From.Format("2006-01-02"), p.To.AddDate(0, 0, -1).Format("2006-01-02")))

	summaryRows := [][]interface{}{
		{"Horas trabajadas", rep.Summary.HoursWorked},
		{"Litros diesel", rep.Summary.DieselLiters},
		{"Costo diesel", rep.Summary.DieselCost},
		{"Costo mantenimiento", rep.Summary.MaintenanceCost},
		{"Venta", rep.Summary.Sales},
		{"Costo/Venta %", rep.Summary.CostRevenueRatio},
	}
	for i, row := range summaryRows {
		f.SetCellValue(summarySheet, cellName(1, i+3), row[0])
		f.SetCellValue(summarySheet, cellName(2, i+3), row[1])
	}

	plantHeaders := []string{"Planta", "Unidad de negocio", "Equipos", "Horas", "Litros", "L/h", "Costo diesel", "Mantenimiento", "m³ concreto", "Venta", "Remisiones"}
	headerRow := len(summaryRows) + 5
	for i, name := range plantHeaders {
		f.SetCellValue(summarySheet, cellName(i+1, headerRow), name)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(plantHeaders), headerRow)
	firstCol, _ := excelize.CoordinatesToCellName(1, headerRow)
	f.SetCellStyle(summarySheet, firstCol, lastCol, headerStyle)

	for i, pl := range rep.Plants {
		row := headerRow + i + 1
		f.SetCellValue(summarySheet, cellName(1, row), pl.Name)
		f.SetCellValue(summarySheet, cellName(2, row), pl.BusinessUnitName)
		f.SetCellValue(summarySheet, cellName(3, row), pl.AssetCount)
		f.SetCellValue(summarySheet, cellName(4, row), pl.HoursWorked)
		f.SetCellValue(summarySheet, cellName(5, row), pl.DieselLiters)
		if pl.LitersPerHour != nil {
			f.SetCellValue(summarySheet, cellName(6, row), *pl.LitersPerHour)
		}
		f.SetCellValue(summarySheet, cellName(7, row), pl.DieselCost)
		f.SetCellValue(summarySheet, cellName(8, row), pl.MaintenanceCost)
		f.SetCellValue(summarySheet, cellName(9, row), pl.ConcreteM3)
		f.SetCellValue(summarySheet, cellName(10, row), pl.Sales)
		f.SetCellValue(summarySheet, cellName(11, row), pl.Remisiones)
	}

	// --- hoja de detalle por equipo ---
	detailSheet := "Equipos"
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	assetHeaders := []string{"Código", "Nombre", "Tipo", "Planta", "Unidad de negocio", "Horas", "Litros", "L/h", "Costo diesel", "Preventivo", "Correctivo", "m³ concreto", "Venta", "Venta c/IVA", "Remisiones"}
	for i, name := range assetHeaders {
		f.SetCellValue(detailSheet, cellName(i+1, 1), name)
	}
	lastCol, _ = excelize.CoordinatesToCellName(len(assetHeaders), 1)
	f.SetCellStyle(detailSheet, "A1", lastCol, headerStyle)

	for i, a := range rep.Assets {
		row := i + 2
		f.SetCellValue(detailSheet, cellName(1, row), a.Code)
		f.SetCellValue(detailSheet, cellName(2, row), a.Name)
		f.SetCellValue(detailSheet, cellName(3, row), a.EquipmentType)
		f.SetCellValue(detailSheet, cellName(4, row), a.PlantName)
		f.SetCellValue(detailSheet, cellName(5, row), a.BusinessUnitName)
		f.SetCellValue(detailSheet, cellName(6, row), a.HoursWorked)
		f.SetCellValue(detailSheet, cellName(7, row), a.DieselLiters)
		if a.LitersPerHour != nil {
			f.SetCellValue(detailSheet, cellName(8, row), *a.LitersPerHour)
		}
		f.SetCellValue(detailSheet, cellName(9, row), a.DieselCost)
		f.SetCellValue(detailSheet, cellName(10, row), a.PreventiveCost)
		f.SetCellValue(detailSheet, cellName(11, row), a.CorrectiveCost)
		f.SetCellValue(detailSheet, cellName(12, row), a.ConcreteM3)
		f.SetCellValue(detailSheet, cellName(13, row), a.Sales)
		f.SetCellValue(detailSheet, cellName(14, row), a.SalesWithVAT)
		f.SetCellValue(detailSheet, cellName(15, row), a.Remisiones)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	return cell
}
