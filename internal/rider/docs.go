// Package rider is the rider-side delivery session.
//
// A Session owns four cooperating parts:
//
//   - Feed polls the rider's notifications and surfaces the newest pending one.
//   - DecisionFlow lets the rider accept or decline the surfaced notification,
//     one decision at a time.
//   - Tracker caches the current order and advances it one action at a time.
//   - LocationReporter keeps the latest device position while the rider is online.
//
// The service is reached through the API port and the device through the
// Geolocator port, so the whole workflow runs in tests without a network.
package rider
