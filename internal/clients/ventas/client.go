package ventas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SalesRow — renglón del feed externo de ventas de concreto. La planta y el
// nombre de unidad vienen con los códigos del sistema comercial, no con los
// ids del registro interno.
type SalesRow struct {
	ExternalPlantID string  `json:"plant_id"`
	AssetName       string  `json:"unit_name"`
	ConcreteM3      float64 `json:"concrete_m3"`
	TotalM3         float64 `json:"total_m3"`
	Subtotal        float64 `json:"subtotal"`
	TotalWithVAT    float64 `json:"total_with_vat"`
	Remisiones      int     `json:"remisiones"`
}

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetSales consulta ventas agrupadas por planta y unidad dentro de [from, to).
// plantCodes vacío = todas las plantas.
func (c *Client) GetSales(ctx context.Context, from, to time.Time, plantCodes []string) ([]SalesRow, error) {
	const op = "clients.ventas.GetSales"

	reqBody := struct {
		DateFrom string   `json:"dateFrom"`
		DateTo   string   `json:"dateTo"`
		Plants   []string `json:"plants,omitempty"`
	}{
		DateFrom: from.Format("2006-01-02"),
		DateTo:   to.Format("2006-01-02"),
		Plants:   plantCodes,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/sales/summary", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: error llamando feed de ventas %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: feed de ventas status %d", op, resp.StatusCode)
	}

	var out struct {
		Rows []SalesRow `json:"rows"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out.Rows, nil
}
