package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/forkify/internal/data"
	"philcali.me/forkify/internal/exceptions"
)

const NAME = "KeyValue"

type KeyValueDTO struct {
	PK         string    `dynamodbav:"PK"`
	SK         string    `dynamodbav:"SK"`
	Value      []byte    `dynamodbav:"value"`
	UpdateTime time.Time `dynamodbav:"updateTime"`
}

// KeyValueDynamoDBService stores every key as an item under the
// "<namespace>:KeyValue" partition.
type KeyValueDynamoDBService struct {
	DynamoDB  *dynamodb.Client
	TableName string
	Namespace string
}

var _ data.KeyValueStore = (*KeyValueDynamoDBService)(nil)

func NewKeyValueService(tableName string, namespace string, client *dynamodb.Client) *KeyValueDynamoDBService {
	return &KeyValueDynamoDBService{
		DynamoDB:  client,
		TableName: tableName,
		Namespace: namespace,
	}
}

func (kv *KeyValueDynamoDBService) primaryKey() string {
	return fmt.Sprintf("%s:%s", kv.Namespace, NAME)
}

func (kv *KeyValueDynamoDBService) key(itemKey string) (map[string]types.AttributeValue, error) {
	pk, err := attributevalue.Marshal(kv.primaryKey())
	if err != nil {
		return nil, err
	}
	sk, err := attributevalue.Marshal(itemKey)
	if err != nil {
		return nil, err
	}
	return map[string]types.AttributeValue{"PK": pk, "SK": sk}, nil
}

func (kv *KeyValueDynamoDBService) Get(ctx context.Context, itemKey string) ([]byte, error) {
	key, err := kv.key(itemKey)
	if err != nil {
		return nil, err
	}
	response, err := kv.DynamoDB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(kv.TableName),
		Key:       key,
	})
	if err != nil {
		return nil, err
	}
	if response.Item == nil {
		return nil, exceptions.NotFound("key", itemKey)
	}
	var dto KeyValueDTO
	if err := attributevalue.UnmarshalMap(response.Item, &dto); err != nil {
		return nil, err
	}
	return dto.Value, nil
}

func (kv *KeyValueDynamoDBService) Put(ctx context.Context, itemKey string, value []byte) error {
	key, err := kv.key(itemKey)
	if err != nil {
		return err
	}
	update := expression.Set(expression.Name("value"), expression.Value(value)).
		Set(expression.Name("updateTime"), expression.Value(time.Now()))
	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return err
	}
	_, err = kv.DynamoDB.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(kv.TableName),
		Key:                       key,
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		UpdateExpression:          expr.Update(),
	})
	return err
}
