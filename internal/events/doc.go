// Package events provides types and interfaces for an event-driven architecture.
//
// This package defines event types and handler interfaces that allow for loose
// coupling between components in the system. Services can emit events without
// knowing which handlers will process them, enabling better separation of
// concerns and reducing circular dependencies.
//
// Two event flows live here:
//   - TaskRequestEvent: an in-process request to create a background task,
//     dispatched to registered handlers by the InMemoryEventEmitter.
//   - ReadingComputedEvent: an integration event published to Kafka whenever
//     a daily energy reading is computed, for downstream consumers.
package events
