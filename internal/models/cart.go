package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// CartLine stores a product reference plus a positive quantity. At most one
// line exists per product; a quantity of zero or less never persists.
type CartLine struct {
	ProductID primitive.ObjectID `bson:"product" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// PopulatedLine is the read model of a cart line: the stored product
// reference resolved against the catalog at read time. Product is nil when
// the referenced product no longer exists.
type PopulatedLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}
