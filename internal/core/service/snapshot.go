package service

import (
	"github.com/adiallo/orderflow/internal/core/domain"
)

// The snapshot helpers denormalize the source aggregate into the shapes
// stored on the order, so later changes to addresses, users or the catalog
// never retroactively alter a placed order.

func snapshotShipping(src domain.SourceShipping) domain.Shipping {
	a := src.Address
	return domain.Shipping{
		Method: src.Method,
		Address: domain.ShippingAddress{
			ID:          a.ID,
			FirstName:   a.FirstName,
			LastName:    a.LastName,
			Description: a.Description,
			Phone:       a.Phone,
			City:        domain.CityRef{Name: a.City.Name, Code: a.City.Code},
			Postal:      a.Postal,
		},
	}
}

func snapshotContents(contents []domain.SourceContentGroup) []domain.ContentGroup {
	result := make([]domain.ContentGroup, 0, len(contents))
	for _, group := range contents {
		result = append(result, domain.ContentGroup{
			Classe:   snapshotRef(group.Classe),
			School:   snapshotRef(group.School),
			Products: snapshotProducts(group.Products),
			List:     group.List,
			Names:    group.Names,
			Total:    domain.NormalizeAmount(group.Total),
		})
	}
	return result
}

func snapshotRef(ref *domain.Ref) *domain.Ref {
	if ref == nil {
		return nil
	}
	return &domain.Ref{ID: ref.ID, Name: ref.Name, Slug: ref.Slug, Code: ref.Code}
}

func snapshotProducts(lines []domain.SourceProductLine) []domain.ProductLine {
	result := make([]domain.ProductLine, 0, len(lines))
	for _, line := range lines {
		p := line.Product
		result = append(result, domain.ProductLine{
			ID:         p.ID,
			Slug:       p.Slug,
			Name:       p.Name,
			Price:      domain.NormalizeAmount(p.Price),
			SalePrice:  domain.NormalizeAmount(p.SalePrice),
			OrderPrice: domain.NormalizeAmount(p.OrderPrice),
			ISBN:       p.ISBN,
			TVA:        domain.NormalizeAmount(p.TVA),
			Discount:   domain.NormalizeAmount(p.Discount),
			Assets:     stripImages(p.Assets),
			HT:         domain.NormalizeAmount(p.HT),
			Quantity:   domain.NormalizeCount(line.Quantity),
		})
	}
	return result
}

// stripImages drops the image list from a product's assets: denormalized
// orders never carry heavy media.
func stripImages(assets map[string]any) map[string]any {
	if assets == nil {
		return nil
	}
	result := make(map[string]any, len(assets))
	for k, v := range assets {
		if k == "images" {
			continue
		}
		result[k] = v
	}
	return result
}

func snapshotCart(src *domain.SourceCart) domain.CartSummary {
	detail := src.TotalDetail
	return domain.CartSummary{
		ID:        src.ID,
		TVA:       domain.NormalizeAmount(detail.TVA),
		Price:     domain.NormalizeAmount(detail.Price),
		SalePrice: domain.NormalizeAmount(detail.SalePrice),
		HT:        domain.NormalizeAmount(detail.HT),
		Discount:  domain.NormalizeAmount(detail.Discount),
		Count:     domain.NormalizeCount(detail.Count),
		Total:     domain.NormalizeAmount(detail.SalePrice),
	}
}

func snapshotCustomer(profile *domain.Profile) domain.Customer {
	return domain.Customer{
		LastName:  profile.LastName,
		FirstName: profile.FirstName,
		Phone:     profile.Phone,
		Email:     profile.Email,
		ID:        profile.ID,
	}
}
