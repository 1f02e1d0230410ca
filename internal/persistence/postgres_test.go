package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPingWithoutPool(t *testing.T) {
	pg := &Postgres{}
	assert.Error(t, pg.Ping(context.Background()))
	assert.Nil(t, pg.PoolHandle())

	var nilPg *Postgres
	assert.Error(t, nilPg.Ping(context.Background()))
}

func TestRedisPingWithoutClient(t *testing.T) {
	rds := &Redis{}
	assert.Error(t, rds.Ping(context.Background()))
}
