package repository

import "context"

type Repository[T any] interface {
	Create(ctx context.Context, collectionName string, entity T) (T, error)
	FindByCallSid(ctx context.Context, collectionName string, callSid string) (T, error)
	FindAll(ctx context.Context, collectionName string) ([]T, error)
	Delete(ctx context.Context, collectionName string, callSid string) error
}
