// Package lookup — внешний справочник товаров OpenFDA. Используется
// как best-effort обогащение: промах по баркоду не ошибка.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"barkod_bot/storage"
)

// Client ходит в OpenFDA drug/ndc за карточкой по UPC-баркоду
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL, apiKey string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type searchResponse struct {
	Results []struct {
		BrandName   string `json:"brand_name"`
		GenericName string `json:"generic_name"`
		LabelerName string `json:"labeler_name"`
		OpenFDA     struct {
			ManufacturerName []string `json:"manufacturer_name"`
			SubstanceName    []string `json:"substance_name"`
		} `json:"openfda"`
	} `json:"results"`
}

// Lookup ищет товар по баркоду. (nil, nil) — карточки нет,
// ошибка — только отказ транспорта или неожиданный статус.
func (c *Client) Lookup(ctx context.Context, barcode int64) (*storage.Product, error) {
	q := url.Values{}
	q.Set("search", fmt.Sprintf(`openfda.upc:"%d"`, barcode))
	q.Set("limit", "1")
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}

	reqURL := fmt.Sprintf("%s/drug/ndc.json?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openfda запрос: %w", err)
	}
	defer resp.Body.Close()

	// OpenFDA отвечает 404 на пустую выборку
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openfda статус %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("openfda ответ: %w", err)
	}
	if len(body.Results) == 0 {
		return nil, nil
	}
	r := body.Results[0]

	name := firstNonEmpty(r.BrandName, r.GenericName, "Nom mavjud emas")
	artikul := firstNonEmpty(r.GenericName, "Artikul mavjud emas")
	brend := r.LabelerName
	if len(r.OpenFDA.ManufacturerName) > 0 {
		brend = r.OpenFDA.ManufacturerName[0]
	}
	category := "Dori-darmon"
	if len(r.OpenFDA.SubstanceName) > 0 {
		category = r.OpenFDA.SubstanceName[0]
	}

	c.log.WithFields(logrus.Fields{"barcode": barcode, "name": name}).
		Info("🔎 Товар найден в OpenFDA")

	return &storage.Product{
		Name:       name,
		Artikul:    artikul,
		Barcode:    barcode,
		Category:   category,
		Postavshik: "OpenFDA",
		Brend:      firstNonEmpty(brend, "Brend mavjud emas"),
		Srok:       "N/A",
		Edinitsa:   "N/A",
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
