// Package dynamo implements the movie store on Amazon DynamoDB.
package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"

	"movie-catalog-api/internal/models"
	"movie-catalog-api/internal/repositories"
)

// API is the subset of the DynamoDB client used by Store
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store implements repositories.Store on DynamoDB
type Store struct {
	client API
	logger *logrus.Logger
}

// NewStore creates a Store around an existing client
func NewStore(client API, logger *logrus.Logger) *Store {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Store{
		client: client,
		logger: logger,
	}
}

// NewClient builds a DynamoDB client from the default AWS credential chain.
// endpoint overrides the service endpoint, e.g. for DynamoDB Local.
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// GetByKey implements repositories.Store.GetByKey
func (s *Store) GetByKey(ctx context.Context, table string, key repositories.Key) (models.Record, error) {
	keyAV, err := attributevalue.MarshalMap(map[string]interface{}{key.Attribute: key.Value})
	if err != nil {
		return nil, repositories.NewRepositoryError("GetByKey", table, key, err, false)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       keyAV,
	})
	if err != nil {
		return nil, repositories.NewRepositoryError("GetByKey", table, key, err, isRetryable(err))
	}

	s.logger.WithFields(logrus.Fields{
		"table": table,
		"key":   key.String(),
		"found": len(out.Item) > 0,
	}).Debug("GetItem response")

	if len(out.Item) == 0 {
		return nil, repositories.NewRepositoryError("GetByKey", table, key, repositories.ErrNotFound, false)
	}

	item, err := decodeItem(out.Item)
	if err != nil {
		return nil, repositories.NewRepositoryError("GetByKey", table, key, err, false)
	}
	return item, nil
}

// Query implements repositories.Store.Query, following continuation keys
// until every matching item has been read
func (s *Store) Query(ctx context.Context, q *repositories.Query) ([]models.Record, error) {
	if q == nil || q.Key.Attribute == "" {
		return nil, repositories.ErrInvalidQuery
	}

	input, err := buildQueryInput(q)
	if err != nil {
		return nil, repositories.NewRepositoryError("Query", q.Table, q.Key, err, false)
	}

	items := []models.Record{}
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, repositories.NewRepositoryError("Query", q.Table, q.Key, err, isRetryable(err))
		}
		for _, av := range page.Items {
			item, err := decodeItem(av)
			if err != nil {
				return nil, repositories.NewRepositoryError("Query", q.Table, q.Key, err, false)
			}
			items = append(items, item)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"table": q.Table,
		"index": q.Index,
		"count": len(items),
	}).Debug("Query response")

	return items, nil
}

// Close implements repositories.Store.Close
func (s *Store) Close() error {
	return nil
}

// buildQueryInput translates a query into a DynamoDB key condition
func buildQueryInput(q *repositories.Query) (*dynamodb.QueryInput, error) {
	keyCond := expression.Key(q.Key.Attribute).Equal(expression.Value(q.Key.Value))
	if q.Condition != nil {
		keyCond = keyCond.And(expression.Key(q.Condition.Attribute).BeginsWith(q.Condition.Prefix))
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrInvalidQuery, err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(q.Table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if q.Index != "" {
		input.IndexName = aws.String(q.Index)
	}
	return input, nil
}

// decodeItem unmarshals an item keeping numbers exact
func decodeItem(av map[string]types.AttributeValue) (models.Record, error) {
	decoder := attributevalue.NewDecoder(func(o *attributevalue.DecoderOptions) {
		o.UseNumber = true
	})

	var raw map[string]interface{}
	if err := decoder.Decode(&types.AttributeValueMemberM{Value: av}, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	item := make(models.Record, len(raw))
	for k, v := range raw {
		item[k] = normalizeNumbers(v)
	}
	return item, nil
}

// normalizeNumbers replaces attributevalue.Number with json.Number so values
// serialize as JSON numbers rather than strings
func normalizeNumbers(v interface{}) interface{} {
	switch val := v.(type) {
	case attributevalue.Number:
		return json.Number(val)
	case []attributevalue.Number:
		out := make([]interface{}, len(val))
		for i, n := range val {
			out[i] = json.Number(n)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, inner := range val {
			out[k] = normalizeNumbers(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, inner := range val {
			out[i] = normalizeNumbers(inner)
		}
		return out
	default:
		return v
	}
}

// isRetryable reports throttling and server side failures
func isRetryable(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	return errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal)
}
