package testkit

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockDisk is a testify-backed storage.Disk for exercising storage failures.
//
//	d := testkit.NewMockDisk("s3")
//	d.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))
type MockDisk struct {
	mock.Mock
	name string
}

// NewMockDisk returns a MockDisk reporting name from Name().
func NewMockDisk(name string) *MockDisk { return &MockDisk{name: name} }

func (d *MockDisk) Name() string { return d.name }

func (d *MockDisk) Put(ctx context.Context, path string, content []byte, contentType string) error {
	return d.Called(ctx, path, content, contentType).Error(0)
}

func (d *MockDisk) Get(ctx context.Context, path string) ([]byte, error) {
	args := d.Called(ctx, path)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (d *MockDisk) Exists(ctx context.Context, path string) (bool, error) {
	args := d.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (d *MockDisk) Delete(ctx context.Context, path string) error {
	return d.Called(ctx, path).Error(0)
}

func (d *MockDisk) URL(path string) string {
	return d.Called(path).String(0)
}
