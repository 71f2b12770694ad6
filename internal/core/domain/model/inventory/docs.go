// Package inventory models a purchasable SKU (product variant by color and
// size) and its stock count.
//
// Stock is changed only through Reserve and Release. The persistence adapter
// performs the same check as a single conditional UPDATE so that concurrent
// checkouts contending for the last unit cannot both succeed.
package inventory
