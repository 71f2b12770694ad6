// Package services holds the domain logic that spans more than one aggregate:
//   - OrderBuilder prices cart lines, applies a voucher and creates the Order
//   - TrackingNumbers issues collision-checked tracking numbers
//   - DeliveryCoordinator keeps the delivery and order machines in step
package services
