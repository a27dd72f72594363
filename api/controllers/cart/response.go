package cart

import (
	cartdto "github.com/Mostafa3001hamdy/ELEX-Main/api/controllers/cart/dto"
	"github.com/Mostafa3001hamdy/ELEX-Main/internal/cart"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/types"
)

func newCart(snap cart.Snapshot) cartdto.Cart {
	items := make([]cartdto.CartItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		dto := cartdto.CartItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    types.OptionalNumber(item.Price),
			Quantity: item.Quantity,
			Image:    item.Image,
		}
		if line, ok := item.LineTotal(); ok {
			n := types.NumberOf(line)
			dto.LineTotal = &n
		}
		items = append(items, dto)
	}
	return cartdto.Cart{
		Items:      items,
		ItemsCount: snap.ItemsCount,
		Total:      types.NumberOf(snap.Total),
		Currency:   snap.Currency,
		IsOpen:     snap.IsOpen,
	}
}
