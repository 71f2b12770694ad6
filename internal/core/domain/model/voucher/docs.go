// Package voucher implements discount codes: eligibility rules, discount
// computation and the usage counter.
//
// A voucher is eligible for a user and subtotal when it is active, now lies in
// [StartDate, EndDate], UsedCount < UsageLimit, it is public or owned by the
// user, and the subtotal reaches MinimumOrder. UsedCount only grows through
// Redeem; CorrectUsage is the single admin path that may lower it.
package voucher
