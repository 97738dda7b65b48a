package kafka

import (
	"strconv"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	CanalInsert = "INSERT"
	CanalUpdate = "UPDATE"
	CanalDelete = "DELETE"
)

var (
	ErrTableMismatch = errors.New("table name not match")
	ErrEmptyData     = errors.New("data is empty")
)

// CanalMessage is the flat JSON Canal publishes to Kafka for one binlog event.
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data holds row images after the change, Old the changed columns before it.
	Data []map[string]interface{} `json:"data"`
	Old  []map[string]interface{} `json:"old"`

	SqlType   map[string]int    `json:"sqlType"`
	MysqlType map[string]string `json:"mysqlType"`
}

// ParseCanalMessage decodes value and checks it is a row event of tableName.
func ParseCanalMessage(value []byte, tableName string) (*CanalMessage, error) {
	var canalMsg CanalMessage
	if err := json.Unmarshal(value, &canalMsg); err != nil {
		return nil, errors.Wrap(err, "unmarshal canal message")
	}

	if canalMsg.Table != tableName {
		return nil, errors.WithMessagef(ErrTableMismatch, "got %q", canalMsg.Table)
	}

	if canalMsg.IsDDL || len(canalMsg.Data) == 0 {
		return nil, ErrEmptyData
	}

	return &canalMsg, nil
}

// StrToUint64 reads a Canal column value, which is a string for every type.
func StrToUint64(v interface{}) (uint64, error) {
	switch t := v.(type) {
	case string:
		return strconv.ParseUint(t, 10, 64)
	case float64:
		return uint64(t), nil
	case nil:
		return 0, errors.New("value is null")
	default:
		return 0, errors.Errorf("unexpected column type %T", v)
	}
}

// ColumnString returns a column as a string, or "" when absent or null.
func ColumnString(row map[string]interface{}, column string) string {
	s, _ := row[column].(string)
	return s
}
