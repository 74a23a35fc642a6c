package domain

import "time"

// PriceLevel is one level of an order book side.
type PriceLevel struct {
	Price    float64 `json:"price" bson:"price"`
	Quantity float64 `json:"quantity" bson:"quantity"`
}

// OrderBookSnapshot is a point-in-time capture of an exchange order book
// for one trading pair.
type OrderBookSnapshot struct {
	Symbol    string       `json:"symbol" bson:"symbol"`
	Bids      []PriceLevel `json:"bids" bson:"bids"`
	Asks      []PriceLevel `json:"asks" bson:"asks"`
	Timestamp time.Time    `json:"timestamp" bson:"timestamp"`
}
