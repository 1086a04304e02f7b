// Package domain holds the fault catalogue shared by the entity sub-packages.
// Entity types live in sub-packages (domain/todo). Every business failure is
// expressed as a fault.Error so that services can return it inside a
// result.Result without translating between error representations.
package domain
