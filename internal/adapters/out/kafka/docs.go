// Package kafka publishes order status changes to a Kafka topic.
//
// Events are written after the database transaction commits, keyed by order id
// so that all changes of one order land on the same partition in order.
package kafka
