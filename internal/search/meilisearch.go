package search

import (
	"rentflow-portal/internal/models"

	"github.com/meilisearch/meilisearch-go"
)

const (
	unitsIndex   = "units"
	tenantsIndex = "tenants"
)

// Client wraps the optional Meilisearch backend. When search is disabled in
// config the handlers fall back to database-side filtering and this type is
// never constructed.
type Client struct {
	client *meilisearch.Client
}

func NewClient(host, apiKey string) *Client {
	return &Client{
		client: meilisearch.NewClient(meilisearch.ClientConfig{
			Host:   host,
			APIKey: apiKey,
		}),
	}
}

// UnitDocument is the flattened unit shape pushed to the index.
type UnitDocument struct {
	ID           string  `json:"id"`
	UnitNumber   string  `json:"unit_number"`
	PropertyName string  `json:"property_name"`
	TenantName   string  `json:"tenant_name,omitempty"`
	Status       string  `json:"status"`
	RentAmount   float64 `json:"rent_amount"`
}

// TenantDocument is the flattened tenant shape pushed to the index.
type TenantDocument struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	UnitNumber   string `json:"unit_number,omitempty"`
	PropertyName string `json:"property_name,omitempty"`
	Status       string `json:"status"`
}

// InitIndexes creates both indexes and configures their attributes.
func (c *Client) InitIndexes() error {
	for _, idx := range []string{unitsIndex, tenantsIndex} {
		_, err := c.client.CreateIndex(&meilisearch.IndexConfig{
			Uid:        idx,
			PrimaryKey: "id",
		})
		if err != nil && err.Error() != "index already exists" {
			return err
		}
	}

	if _, err := c.client.Index(unitsIndex).UpdateSearchableAttributes(&[]string{
		"unit_number", "property_name", "tenant_name",
	}); err != nil {
		return err
	}
	if _, err := c.client.Index(unitsIndex).UpdateFilterableAttributes(&[]string{
		"status", "rent_amount",
	}); err != nil {
		return err
	}

	if _, err := c.client.Index(tenantsIndex).UpdateSearchableAttributes(&[]string{
		"full_name", "phone", "unit_number", "property_name",
	}); err != nil {
		return err
	}
	if _, err := c.client.Index(tenantsIndex).UpdateFilterableAttributes(&[]string{
		"status",
	}); err != nil {
		return err
	}

	return nil
}

// IndexUnits pushes unit rows (with their display fields populated) to the
// units index.
func (c *Client) IndexUnits(units []models.Unit) error {
	if len(units) == 0 {
		return nil
	}
	docs := make([]UnitDocument, 0, len(units))
	for _, u := range units {
		docs = append(docs, UnitDocument{
			ID:           u.ID,
			UnitNumber:   u.UnitNumber,
			PropertyName: u.PropertyName,
			TenantName:   u.CurrentTenantName,
			Status:       string(u.Status),
			RentAmount:   u.RentAmount,
		})
	}
	_, err := c.client.Index(unitsIndex).AddDocuments(docs)
	return err
}

// IndexTenants pushes tenant rows to the tenants index.
func (c *Client) IndexTenants(tenants []models.Tenant) error {
	if len(tenants) == 0 {
		return nil
	}
	docs := make([]TenantDocument, 0, len(tenants))
	for _, t := range tenants {
		docs = append(docs, TenantDocument{
			ID:           t.ID,
			FullName:     t.FullName,
			Phone:        t.Phone,
			UnitNumber:   t.CurrentUnitNumber,
			PropertyName: t.CurrentPropertyName,
			Status:       string(t.Status),
		})
	}
	_, err := c.client.Index(tenantsIndex).AddDocuments(docs)
	return err
}

// Result is a cross-entity search hit list.
type Result struct {
	Units   []UnitDocument   `json:"units"`
	Tenants []TenantDocument `json:"tenants"`
}

// Search queries both indexes and returns the combined hits.
func (c *Client) Search(query string, limit int64) (*Result, error) {
	if limit == 0 {
		limit = 20
	}

	unitRes, err := c.client.Index(unitsIndex).Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, err
	}
	tenantRes, err := c.client.Index(tenantsIndex).Search(query, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, hit := range unitRes.Hits {
		if m, ok := hit.(map[string]interface{}); ok {
			result.Units = append(result.Units, UnitDocument{
				ID:           getString(m, "id"),
				UnitNumber:   getString(m, "unit_number"),
				PropertyName: getString(m, "property_name"),
				TenantName:   getString(m, "tenant_name"),
				Status:       getString(m, "status"),
				RentAmount:   getFloat(m, "rent_amount"),
			})
		}
	}
	for _, hit := range tenantRes.Hits {
		if m, ok := hit.(map[string]interface{}); ok {
			result.Tenants = append(result.Tenants, TenantDocument{
				ID:           getString(m, "id"),
				FullName:     getString(m, "full_name"),
				Phone:        getString(m, "phone"),
				UnitNumber:   getString(m, "unit_number"),
				PropertyName: getString(m, "property_name"),
				Status:       getString(m, "status"),
			})
		}
	}

	return result, nil
}

func getString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

func getFloat(m map[string]interface{}, key string) float64 {
	if val, ok := m[key].(float64); ok {
		return val
	}
	return 0
}
