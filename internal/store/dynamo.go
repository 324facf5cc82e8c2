package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/catalog-lab/catalog-api/internal/metrics"
	"github.com/catalog-lab/catalog-api/pkg/model"
)

// DynamoStore persists products in a DynamoDB table keyed by "id".
// Price travels as a DynamoDB Number built from the exact decimal string,
// so no binary float rounding happens on the storage path.
type DynamoStore struct {
	client *dynamodb.Client
	table  string
	logger *zap.Logger
}

// NewDynamo creates a DynamoDB-backed store for the given table.
// endpoint overrides the service URL (e.g. DynamoDB Local); leave it
// empty for the real service.
func NewDynamo(ctx context.Context, region, table, endpoint string, logger *zap.Logger) (*DynamoStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return &DynamoStore{client: client, table: table, logger: logger}, nil
}

func (s *DynamoStore) Get(ctx context.Context, id string) (*model.Product, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(id),
	})
	if err != nil {
		metrics.IncStoreError("get")
		return nil, fmt.Errorf("dynamo get [%s]: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	return unmarshalProduct(out.Item)
}

func (s *DynamoStore) PutIfAbsent(ctx context.Context, p model.Product) error {
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                marshalProduct(p),
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrAlreadyExists
		}
		metrics.IncStoreError("put")
		return fmt.Errorf("dynamo put [%s]: %w", p.ID, err)
	}
	return nil
}

func (s *DynamoStore) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	sets := make([]string, 0, 3)
	names := make(map[string]string, 3)
	values := make(map[string]types.AttributeValue, 3)

	if patch.Name != nil {
		sets = append(sets, "#n = :n")
		names["#n"] = "name"
		values[":n"] = &types.AttributeValueMemberS{Value: *patch.Name}
	}
	if patch.Price != nil {
		sets = append(sets, "#p = :p")
		names["#p"] = "price"
		values[":p"] = &types.AttributeValueMemberN{Value: patch.Price.String()}
	}
	if patch.Quantity != nil {
		sets = append(sets, "#q = :q")
		names["#q"] = "quantity"
		values[":q"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(*patch.Quantity, 10)}
	}
	if len(sets) == 0 {
		cur, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return cur, nil
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.table),
		Key:                       itemKey(id),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		// Updating a missing id must not fabricate a partial record.
		ConditionExpression: aws.String("attribute_exists(id)"),
		ReturnValues:        types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, ErrNotFound
		}
		metrics.IncStoreError("update")
		return nil, fmt.Errorf("dynamo update [%s]: %w", id, err)
	}
	return unmarshalProduct(out.Attributes)
}

func (s *DynamoStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(id),
	})
	if err != nil {
		metrics.IncStoreError("delete")
		return fmt.Errorf("dynamo delete [%s]: %w", id, err)
	}
	return nil
}

func (s *DynamoStore) Scan(ctx context.Context, opts ScanOptions) ([]model.Product, string, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	}
	if opts.Limit > 0 {
		input.Limit = aws.Int32(opts.Limit)
	}
	if opts.Cursor != "" {
		input.ExclusiveStartKey = itemKey(opts.Cursor)
	}

	var products []model.Product
	for {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			metrics.IncStoreError("scan")
			return nil, "", fmt.Errorf("dynamo scan: %w", err)
		}
		for _, item := range out.Items {
			p, err := unmarshalProduct(item)
			if err != nil {
				s.logger.Warn("store.scan.skipping_malformed_item", zap.Error(err))
				continue
			}
			products = append(products, *p)
		}

		if out.LastEvaluatedKey == nil {
			return products, "", nil
		}
		if opts.Limit > 0 {
			// Paginated mode: surface the continuation key as a cursor.
			return products, keyID(out.LastEvaluatedKey), nil
		}
		// Unbounded mode: follow pages until the table is exhausted.
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func (s *DynamoStore) HealthCheck(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err != nil {
		return fmt.Errorf("dynamo describe table [%s]: %w", s.table, err)
	}
	return nil
}

func itemKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func keyID(key map[string]types.AttributeValue) string {
	if av, ok := key["id"].(*types.AttributeValueMemberS); ok {
		return av.Value
	}
	return ""
}

// marshalProduct builds the item by hand so price keeps its exact
// decimal representation in the Number attribute.
func marshalProduct(p model.Product) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id":         &types.AttributeValueMemberS{Value: p.ID},
		"name":       &types.AttributeValueMemberS{Value: p.Name},
		"price":      &types.AttributeValueMemberN{Value: p.Price.String()},
		"quantity":   &types.AttributeValueMemberN{Value: strconv.FormatInt(p.Quantity, 10)},
		"created_at": &types.AttributeValueMemberS{Value: p.CreatedAt},
	}
}

func unmarshalProduct(item map[string]types.AttributeValue) (*model.Product, error) {
	var p model.Product

	if av, ok := item["id"].(*types.AttributeValueMemberS); ok {
		p.ID = av.Value
	}
	if av, ok := item["name"].(*types.AttributeValueMemberS); ok {
		p.Name = av.Value
	}
	if av, ok := item["created_at"].(*types.AttributeValueMemberS); ok {
		p.CreatedAt = av.Value
	}
	if av, ok := item["price"].(*types.AttributeValueMemberN); ok {
		price, err := decimal.NewFromString(av.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid price attribute [%s]: %w", av.Value, err)
		}
		p.Price = price
	}
	if av, ok := item["quantity"].(*types.AttributeValueMemberN); ok {
		qty, err := strconv.ParseInt(av.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity attribute [%s]: %w", av.Value, err)
		}
		p.Quantity = qty
	}

	if p.ID == "" {
		return nil, fmt.Errorf("item missing id attribute")
	}
	return &p, nil
}
