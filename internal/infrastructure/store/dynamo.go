package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/example/order-fulfillment/internal/domain/cart"
	"github.com/example/order-fulfillment/internal/domain/order"
	"github.com/example/order-fulfillment/internal/domain/shared"
)

// NewDynamoClient builds a DynamoDB client from the default AWS config chain.
func NewDynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// dynamoCartItem is the DynamoDB item shape for a cart. The memento travels
// as a nested attribute; id, customer_id, and version are lifted out for the
// key, the customer lookup, and the conditional write.
type dynamoCartItem struct {
	CartID     string       `dynamodbav:"cart_id"`
	CustomerID string       `dynamodbav:"customer_id"`
	Version    int          `dynamodbav:"version"`
	State      cart.Memento `dynamodbav:"state"`
}

// DynamoCartRepository stores carts in a DynamoDB table keyed by cart_id.
// Optimistic concurrency uses a ConditionExpression on the version attribute.
type DynamoCartRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoCartRepository(client *dynamodb.Client, tableName string) *DynamoCartRepository {
	return &DynamoCartRepository{client: client, tableName: tableName}
}

func (r *DynamoCartRepository) Save(ctx context.Context, c *cart.ShoppingCart) error {
	m := c.Memento()
	next := c.Version() + 1
	m.Version = next

	av, err := attributevalue.MarshalMap(dynamoCartItem{
		CartID:     m.CartID,
		CustomerID: m.CustomerID,
		Version:    next,
		State:      m,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}
	if c.Version() == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(cart_id)")
	} else {
		input.ConditionExpression = aws.String("version = :expected")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.Itoa(c.Version())},
		}
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("%w (cart %s, version %d)", cart.ErrVersionConflict, m.CartID, c.Version())
		}
		return fmt.Errorf("failed to put cart: %w", err)
	}
	c.SetVersion(next)
	return nil
}

func (r *DynamoCartRepository) FindByID(ctx context.Context, id shared.CartID) (*cart.ShoppingCart, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"cart_id": &types.AttributeValueMemberS{Value: id.String()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("%w %s", cart.ErrCartNotFound, id)
	}

	var item dynamoCartItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}
	return cart.Restore(item.State)
}

// FindByCustomerID queries the customer_id GSI (partition key customer_id).
func (r *DynamoCartRepository) FindByCustomerID(ctx context.Context, customerID shared.CustomerID) ([]*cart.ShoppingCart, error) {
	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("customer_id-index"),
		KeyConditionExpression: aws.String("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID.String()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query carts: %w", err)
	}

	carts := make([]*cart.ShoppingCart, 0, len(result.Items))
	for _, raw := range result.Items {
		var item dynamoCartItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
		}
		c, err := cart.Restore(item.State)
		if err != nil {
			return nil, err
		}
		carts = append(carts, c)
	}
	return carts, nil
}

func (r *DynamoCartRepository) Delete(ctx context.Context, id shared.CartID) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"cart_id": &types.AttributeValueMemberS{Value: id.String()},
		},
	})
	return err
}

// dynamoOrderItem is the DynamoDB item shape for an order.
type dynamoOrderItem struct {
	OrderID    string        `dynamodbav:"order_id"`
	CustomerID string        `dynamodbav:"customer_id"`
	Version    int           `dynamodbav:"version"`
	State      order.Memento `dynamodbav:"state"`
}

// DynamoOrderRepository stores orders in a DynamoDB table keyed by order_id.
type DynamoOrderRepository struct {
	client    *dynamodb.Client
	tableName string
}

func NewDynamoOrderRepository(client *dynamodb.Client, tableName string) *DynamoOrderRepository {
	return &DynamoOrderRepository{client: client, tableName: tableName}
}

func (r *DynamoOrderRepository) Save(ctx context.Context, o *order.Order) error {
	m := o.Memento()
	next := o.Version() + 1
	m.Version = next

	av, err := attributevalue.MarshalMap(dynamoOrderItem{
		OrderID:    m.OrderID,
		CustomerID: m.CustomerID,
		Version:    next,
		State:      m,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}
	if o.Version() == 0 {
		input.ConditionExpression = aws.String("attribute_not_exists(order_id)")
	} else {
		input.ConditionExpression = aws.String("version = :expected")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.Itoa(o.Version())},
		}
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("%w (order %s, version %d)", order.ErrVersionConflict, m.OrderID, o.Version())
		}
		return fmt.Errorf("failed to put order: %w", err)
	}
	o.SetVersion(next)
	return nil
}

func (r *DynamoOrderRepository) FindByID(ctx context.Context, id shared.OrderID) (*order.Order, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"order_id": &types.AttributeValueMemberS{Value: id.String()},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if result.Item == nil {
		return nil, fmt.Errorf("%w %s", order.ErrOrderNotFound, id)
	}

	var item dynamoOrderItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order: %w", err)
	}
	return order.Restore(item.State)
}
