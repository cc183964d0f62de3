package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	secretsmanagertypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	vault "github.com/hashicorp/vault/api"
	"github.com/kevin07696/settlement-ledger/internal/adapters/ports"
	"github.com/kevin07696/settlement-ledger/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSecretCache(t *testing.T) {
	assert.Nil(t, newSecretCache(0), "zero ttl disables the cache")
	var disabled *secretCache
	disabled.set("k", &ports.Secret{Value: "v"})
	assert.Nil(t, disabled.get("k"))

	c := newSecretCache(time.Minute)
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.set("db", &ports.Secret{Value: "pw"})
	require.NotNil(t, c.get("db"))

	now = now.Add(2 * time.Minute)
	assert.Nil(t, c.get("db"), "expired entries are dropped")

	c.set("db", &ports.Secret{Value: "pw"})
	c.invalidate("db")
	assert.Nil(t, c.get("db"))
}

type fakeSecretsManager struct {
	values  map[string]string
	gets    int
	created []*secretsmanager.CreateSecretInput
}

func (f *fakeSecretsManager) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.gets++
	v, ok := f.values[aws.ToString(in.SecretId)]
	if !ok {
		return nil, &secretsmanagertypes.ResourceNotFoundException{Message: aws.String("missing")}
	}
	return &secretsmanager.GetSecretValueOutput{
		SecretString: aws.String(v),
		VersionId:    aws.String("v-1"),
		ARN:          aws.String("arn:aws:secretsmanager:us-east-1:1:secret:" + aws.ToString(in.SecretId)),
	}, nil
}

func (f *fakeSecretsManager) PutSecretValue(_ context.Context, in *secretsmanager.PutSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.PutSecretValueOutput, error) {
	id := aws.ToString(in.SecretId)
	if _, ok := f.values[id]; !ok {
		return nil, &secretsmanagertypes.ResourceNotFoundException{Message: aws.String("missing")}
	}
	f.values[id] = aws.ToString(in.SecretString)
	return &secretsmanager.PutSecretValueOutput{VersionId: aws.String("v-2")}, nil
}

func (f *fakeSecretsManager) CreateSecret(_ context.Context, in *secretsmanager.CreateSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
	f.created = append(f.created, in)
	f.values[aws.ToString(in.Name)] = aws.ToString(in.SecretString)
	return &secretsmanager.CreateSecretOutput{VersionId: aws.String("v-1")}, nil
}

func TestAWSAdapter(t *testing.T) {
	ctx := context.Background()
	client := &fakeSecretsManager{values: map[string]string{"settlement-ledger/db-password": "pw"}}
	a := newAWSAdapter(client, time.Minute, zap.NewNop())

	secret, err := a.GetSecret(ctx, "settlement-ledger/db-password")
	require.NoError(t, err)
	assert.Equal(t, "pw", secret.Value)
	assert.Equal(t, "v-1", secret.Version)
	assert.Contains(t, secret.Metadata["arn"], "db-password")

	_, err = a.GetSecret(ctx, "settlement-ledger/db-password")
	require.NoError(t, err)
	assert.Equal(t, 1, client.gets, "second read is served from cache")

	_, err = a.GetSecret(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrSecretNotFound)

	version, err := a.PutSecret(ctx, "settlement-ledger/db-password", "pw2", nil)
	require.NoError(t, err)
	assert.Equal(t, "v-2", version)
	secret, err = a.GetSecret(ctx, "settlement-ledger/db-password")
	require.NoError(t, err)
	assert.Equal(t, "pw2", secret.Value, "put invalidates the cache")

	version, err = a.PutSecret(ctx, "settlement-ledger/cron-secret", "s3cret", map[string]string{"owner": "ledger"})
	require.NoError(t, err)
	assert.Equal(t, "v-1", version)
	require.Len(t, client.created, 1)
	assert.Len(t, client.created[0].Tags, 1)
}

type fakeLogical struct {
	data    map[string]map[string]interface{}
	written map[string]map[string]interface{}
	err     error
}

func (f *fakeLogical) ReadWithContext(_ context.Context, path string) (*vault.Secret, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.data[path]
	if !ok {
		return nil, nil
	}
	return &vault.Secret{Data: d}, nil
}

func (f *fakeLogical) WriteWithContext(_ context.Context, path string, data map[string]interface{}) (*vault.Secret, error) {
	if f.written == nil {
		f.written = make(map[string]map[string]interface{})
	}
	f.written[path] = data
	return &vault.Secret{Data: map[string]interface{}{"version": json.Number("4")}}, nil
}

func TestVaultAdapter(t *testing.T) {
	ctx := context.Background()
	logical := &fakeLogical{data: map[string]map[string]interface{}{
		"secret/data/settlement-ledger/cron": {
			"data":     map[string]interface{}{"value": "tok", "owner": "ops"},
			"metadata": map[string]interface{}{"version": json.Number("3"), "created_time": "2026-03-01T00:00:00Z"},
		},
		"secret/data/broken": {"data": "nope"},
	}}
	a := newVaultAdapter(logical, "secret", 0, zap.NewNop())

	secret, err := a.GetSecret(ctx, "settlement-ledger/cron")
	require.NoError(t, err)
	assert.Equal(t, "tok", secret.Value)
	assert.Equal(t, "3", secret.Version)
	assert.Equal(t, "ops", secret.Metadata["owner"])
	assert.Equal(t, "2026-03-01T00:00:00Z", secret.CreatedAt)

	_, err = a.GetSecret(ctx, "absent")
	assert.ErrorIs(t, err, ports.ErrSecretNotFound)

	_, err = a.GetSecret(ctx, "broken")
	assert.Error(t, err)

	version, err := a.PutSecret(ctx, "settlement-ledger/cron", "tok2", map[string]string{"owner": "ops"})
	require.NoError(t, err)
	assert.Equal(t, "4", version)
	written := logical.written["secret/data/settlement-ledger/cron"]["data"].(map[string]interface{})
	assert.Equal(t, "tok2", written["value"])

	logical.err = errors.New("sealed")
	_, err = a.GetSecret(ctx, "settlement-ledger/cron")
	assert.ErrorContains(t, err, "sealed")
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "2", versionString(json.Number("2")))
	assert.Equal(t, "2", versionString(float64(2)))
	assert.Equal(t, "x", versionString("x"))
	assert.Equal(t, "", versionString(nil))
}

func TestLocalSecretManager(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := NewLocalSecretManager(dir, zap.NewNop())

	_, err := m.PutSecret(ctx, "db/password", "pw", map[string]string{"env": "dev"})
	require.NoError(t, err)

	secret, err := m.GetSecret(ctx, "db/password")
	require.NoError(t, err)
	assert.Equal(t, "pw", secret.Value)
	assert.Equal(t, "dev", secret.Metadata["env"])

	info, err := os.Stat(filepath.Join(dir, "db", "password"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "plain"), []byte("token\n"), 0600))
	secret, err = m.GetSecret(ctx, "plain")
	require.NoError(t, err)
	assert.Equal(t, "token", secret.Value)

	_, err = m.GetSecret(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrSecretNotFound)

	_, err = m.GetSecret(ctx, "../outside")
	assert.ErrorContains(t, err, "escapes")
}

func TestNewFromConfigAndResolve(t *testing.T) {
	ctx := context.Background()

	mgr, err := NewFromConfig(ctx, config.SecretsConfig{Provider: "env"}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, mgr)

	value, err := Resolve(ctx, mgr, "db/password", "from-env")
	require.NoError(t, err)
	assert.Equal(t, "from-env", value)

	_, err = NewFromConfig(ctx, config.SecretsConfig{Provider: "gcp"}, zap.NewNop())
	assert.Error(t, err)

	dir := t.TempDir()
	mgr, err = NewFromConfig(ctx, config.SecretsConfig{Provider: "local", LocalPath: dir}, zap.NewNop())
	require.NoError(t, err)
	_, err = mgr.PutSecret(ctx, "cron", "abc", nil)
	require.NoError(t, err)

	value, err = Resolve(ctx, mgr, "cron", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)

	value, err = Resolve(ctx, mgr, "", "fallback")
	require.NoError(t, err)
	assert.Equal(t, "fallback", value)

	_, err = Resolve(ctx, mgr, "missing", "fallback")
	assert.ErrorIs(t, err, ports.ErrSecretNotFound)
}
