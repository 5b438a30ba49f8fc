// Package notify sends low-stock text alerts.
//
// A Trigger is subscribed to the store as an item-update hook. When an update
// leaves an item below LowStockThreshold, the owning user is looked up and,
// if they opted in and have a phone number, one alert is handed to a Sender.
// Delivery is fire-and-forget: failures are logged and counted, never
// returned to the writer.
package notify
