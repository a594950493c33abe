package events

import (
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func _convertStreamAttribute(attr events.DynamoDBAttributeValue) types.AttributeValue {
	switch attr.DataType() {
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: attr.Boolean()}
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: attr.String()}
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: attr.Binary()}
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: attr.Number()}
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: attr.IsNull()}
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: attr.BinarySet()}
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: attr.StringSet()}
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: attr.NumberSet()}
	case events.DataTypeList:
		ls := make([]types.AttributeValue, len(attr.List()))
		for i, item := range attr.List() {
			ls[i] = _convertStreamAttribute(item)
		}
		return &types.AttributeValueMemberL{Value: ls}
	case events.DataTypeMap:
		ms := make(map[string]types.AttributeValue, len(attr.Map()))
		for field, value := range attr.Map() {
			ms[field] = _convertStreamAttribute(value)
		}
		return &types.AttributeValueMemberM{Value: ms}
	}
	return nil
}

// UnmarshalImage decodes a stream image the same way an item read from the
// table would be decoded.
func UnmarshalImage(image map[string]events.DynamoDBAttributeValue, out any) error {
	converted := make(map[string]types.AttributeValue, len(image))
	for field, value := range image {
		converted[field] = _convertStreamAttribute(value)
	}
	return attributevalue.UnmarshalMap(converted, out)
}
