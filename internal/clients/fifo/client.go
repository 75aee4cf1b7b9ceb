package fifo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Client habla con el servicio de costeo PEPS (capas de inventario). Solo nos
// interesa su contrato de entrada/salida: ventana + plantas + precios por
// producto → costo por transacción.
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

// GetTransactionCosts regresa costo real por id de transacción de diesel.
// Las transacciones que el servicio no pudo costear simplemente no vienen en
// el mapa; el llamador aplica su fallback.
func (c *Client) GetTransactionCosts(ctx context.Context, from, to time.Time, plantCodes []string, pricesByProduct map[int]float64) (map[int]float64, error) {
	const op = "clients.fifo.GetTransactionCosts"

	prices := make(map[string]float64, len(pricesByProduct))
	for id, price := range pricesByProduct {
		prices[strconv.Itoa(id)] = price
	}

	reqBody := struct {
		DateFrom        string             `json:"dateFrom"`
		DateTo          string             `json:"dateTo"`
		PlantCodes      []string           `json:"plantCodes,omitempty"`
		PricesByProduct map[string]float64 `json:"pricesByProduct"`
	}{
		DateFrom:        from.Format("2006-01-02"),
		DateTo:          to.Format("2006-01-02"),
		PlantCodes:      plantCodes,
		PricesByProduct: prices,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/costing/diesel", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: error llamando servicio PEPS %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: servicio PEPS status %d", op, resp.StatusCode)
	}

	var out struct {
		Costs map[string]float64 `json:"costs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	costs := make(map[int]float64, len(out.Costs))
	for key, cost := range out.Costs {
		id, err := strconv.Atoi(key)
		if err != nil {
			// id no numérico en la respuesta: lo ignoramos, no es fatal
			continue
		}
		costs[id] = cost
	}

	return costs, nil
}
