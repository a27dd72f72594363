package cart

import (
	cartdto "github.com/Mostafa3001hamdy/ELEX-Main/api/controllers/cart/dto"
	"github.com/Mostafa3001hamdy/ELEX-Main/internal/cart"
	pkgerrors "github.com/Mostafa3001hamdy/ELEX-Main/pkg/errors"
	"github.com/Mostafa3001hamdy/ELEX-Main/pkg/types"
)

func toProductStub(payload cartdto.AddItemRequest) (cart.ProductStub, error) {
	price, err := types.OptionalDecimal(payload.Price)
	if err != nil {
		return cart.ProductStub{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price").
			WithDetails(map[string]string{"price": "must be a number"})
	}
	if price != nil && price.IsNegative() {
		return cart.ProductStub{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid price").
			WithDetails(map[string]string{"price": "must be at least 0"})
	}
	return cart.ProductStub{
		ID:    payload.ID,
		Name:  payload.Name,
		Price: price,
		Image: payload.Image,
	}, nil
}
