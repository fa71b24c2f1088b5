// Package dynamo implements the product store against a DynamoDB table
// using conditional writes for create/update/delete existence checks.
package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"product-catalog-api/internal/models"
	"product-catalog-api/internal/store"
)

// listPageSize bounds the scan; there is no pagination follow-up.
const listPageSize = 100

const (
	conditionNotExists = "attribute_not_exists(PK) AND attribute_not_exists(SK)"
	conditionExists    = "attribute_exists(PK) AND attribute_exists(SK)"
)

// Store implements store.ProductStore on a DynamoDB table.
type Store struct {
	client    *dynamodb.Client
	tableName string
	logger    *logrus.Logger
}

var _ store.ProductStore = (*Store)(nil)

// New creates a DynamoDB-backed product store.
func New(client *dynamodb.Client, tableName string, logger *logrus.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// List scans one page of the table and maps every matched record.
func (s *Store) List(ctx context.Context) ([]*models.Product, error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.tableName),
		Limit:     aws.Int32(listPageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}

	var records []record
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, fmt.Errorf("unmarshal product records: %w", err)
	}

	products := make([]*models.Product, 0, len(records))
	for _, r := range records {
		product, err := fromRecord(r)
		if err != nil {
			return nil, fmt.Errorf("map record %q: %w", r.PK, err)
		}
		products = append(products, product)
	}

	return products, nil
}

// GetByID performs a point lookup by the derived composite key.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Product, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}

	if out.Item == nil {
		return nil, store.ErrNotFound
	}

	var r record
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return nil, fmt.Errorf("unmarshal product %s: %w", id, err)
	}

	return fromRecord(r)
}

// Create writes the product only if no record with its key exists yet.
// The existence condition is evaluated atomically by DynamoDB, which is
// what makes concurrent creates for one id yield at most one success.
func (s *Store) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	item, err := attributevalue.MarshalMap(toRecord(product))
	if err != nil {
		return nil, fmt.Errorf("marshal product %s: %w", product.ID(), err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String(conditionNotExists),
	})
	if err != nil {
		if isConditionFailed(err) {
			s.logger.WithField("product_id", product.ID()).Warn("Create condition failed, product exists")
			return nil, store.ErrAlreadyExists
		}
		return nil, fmt.Errorf("create product %s: %w", product.ID(), err)
	}

	return product, nil
}

// Update writes the product only if a record with its key already exists.
func (s *Store) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	item, err := attributevalue.MarshalMap(toRecord(product))
	if err != nil {
		return nil, fmt.Errorf("marshal product %s: %w", product.ID(), err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.tableName),
		Item:                item,
		ConditionExpression: aws.String(conditionExists),
	})
	if err != nil {
		if isConditionFailed(err) {
			s.logger.WithField("product_id", product.ID()).Warn("Update condition failed, product missing")
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("update product %s: %w", product.ID(), err)
	}

	return product, nil
}

// Delete removes the record and returns its prior attributes.
func (s *Store) Delete(ctx context.Context, id string) (*models.Product, error) {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(s.tableName),
		Key:                 s.key(id),
		ConditionExpression: aws.String(conditionExists),
		ReturnValues:        types.ReturnValueAllOld,
	})
	if err != nil {
		if isConditionFailed(err) {
			s.logger.WithField("product_id", id).Warn("Delete condition failed, product missing")
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("delete product %s: %w", id, err)
	}

	if out.Attributes == nil {
		return nil, store.ErrNotFound
	}

	var r record
	if err := attributevalue.UnmarshalMap(out.Attributes, &r); err != nil {
		return nil, fmt.Errorf("unmarshal deleted product %s: %w", id, err)
	}

	return fromRecord(r)
}

func (s *Store) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: productKey(id)},
		"SK": &types.AttributeValueMemberS{Value: productKey(id)},
	}
}

func isConditionFailed(err error) bool {
	var conditionFailed *types.ConditionalCheckFailedException
	return errors.As(err, &conditionFailed)
}
