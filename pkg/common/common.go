package common

import (
	"math/rand"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	snowflakeNode *snowflake.Node
	snowflakeOnce sync.Once
)

// UUIDint64 returns a cluster-unique int64 identifier.
func UUIDint64() int64 {
	snowflakeOnce.Do(func() {
		var err error
		snowflakeNode, err = snowflake.NewNode(rand.New(rand.NewSource(time.Now().UnixNano())).Int63n(1023))
		if err != nil {
			panic(err)
		}
	})
	return snowflakeNode.Generate().Int64()
}
