package blob

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Samayeeta/indicure-ey/pkg/models/domain"
)

type mockS3 struct {
	mock.Mock
	body []byte
}

func (m *mockS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, *params.Bucket, *params.Key, *params.ContentType)
	if params.Body != nil {
		m.body, _ = io.ReadAll(params.Body)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3Store_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		m := new(mockS3)
		m.On("PutObject", ctx, "reports", "exports/2025/a.pdf", "application/pdf").Return(&s3.PutObjectOutput{}, nil)

		loc, err := NewS3Store(m, "reports", "exports/").Put(ctx, "2025/a.pdf", []byte("%PDF-1.3"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "s3://reports/exports/2025/a.pdf", loc)
		assert.Equal(t, []byte("%PDF-1.3"), m.body)
		m.AssertExpectations(t)
	})

	t.Run("upload error", func(t *testing.T) {
		m := new(mockS3)
		m.On("PutObject", ctx, "reports", "a.pdf", "application/pdf").Return(nil, errors.New("access denied"))

		loc, err := NewS3Store(m, "reports", "").Put(ctx, "a.pdf", []byte("x"), "application/pdf")
		assert.Empty(t, loc)
		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("invalid key", func(t *testing.T) {
		m := new(mockS3)
		_, err := NewS3Store(m, "reports", "").Put(ctx, "../escape.pdf", []byte("x"), "application/pdf")
		assert.Error(t, err)
		m.AssertNotCalled(t, "PutObject")
	})
}

func TestFileStore_Put(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	store := NewFileStore(fs, "/exports")

	loc, err := store.Put(ctx, "2025/03/report.pdf", []byte("%PDF-1.3"), "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "file:///exports/2025/03/report.pdf", loc)

	data, err := afero.ReadFile(fs, "/exports/2025/03/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), data)

	for _, key := range []string{"", "../etc/passwd", "a/../../b"} {
		_, err := store.Put(ctx, key, []byte("x"), "application/pdf")
		assert.Error(t, err, key)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileStore(afero.NewMemMapFs(), "/exports").Put(ctx, "a.pdf", []byte("x"), "application/pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()

	r := NewRegistry()
	require.NoError(t, r.Register(domain.DestinationTypeFile, func(_ context.Context, d domain.Destination) (Store, error) {
		return NewFileStore(fs, d.Dir), nil
	}))

	t.Run("duplicate", func(t *testing.T) {
		err := r.Register(domain.DestinationTypeFile, NewFileFromDestination)
		assert.Error(t, err)
	})

	t.Run("invalid registration", func(t *testing.T) {
		assert.Error(t, r.Register("", NewFileFromDestination))
		assert.Error(t, r.Register("gcs", nil))
	})

	t.Run("create", func(t *testing.T) {
		s, err := r.Create(ctx, domain.Destination{Name: "local", Type: domain.DestinationTypeFile, Dir: "/out"})
		require.NoError(t, err)
		loc, err := s.Put(ctx, "x.pdf", []byte("x"), "application/pdf")
		require.NoError(t, err)
		assert.Equal(t, "file:///out/x.pdf", loc)
	})

	t.Run("unregistered", func(t *testing.T) {
		s, err := r.Create(ctx, domain.Destination{Type: domain.DestinationTypeS3})
		assert.Error(t, err)
		assert.Nil(t, s)
	})

	assert.Equal(t, []domain.DestinationType{domain.DestinationTypeFile, domain.DestinationTypeS3}, DefaultRegistry().ListTypes())
}
