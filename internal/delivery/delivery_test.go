package delivery

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shipdesk/internal/domain"
	"shipdesk/internal/port"
	"shipdesk/mocks"
)

func csvResult() *domain.ExportResult {
	return &domain.ExportResult{
		Format:      domain.ExportFormatCSV,
		Filename:    "shipping_data_1.csv",
		ContentType: "text/csv",
		Body:        []byte("\"Customer\"\n\"ACME\"\n"),
		Source:      domain.ExportSourceLocal,
	}
}

func newTestDeliverer(storage port.ObjectStorage) *ObjectStoreDeliverer {
	d := NewObjectStoreDeliverer(storage, "exports")
	d.newID = func() string { return "fixed" }
	return d
}

func TestInlineDeliverer_PassesThrough(t *testing.T) {
	res := csvResult()
	out, err := InlineDeliverer{}.Deliver(context.Background(), res)
	require.NoError(t, err)
	assert.Same(t, res, out)
}

func TestObjectStoreDeliverer_UploadsAndPresigns(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	ctx := context.Background()
	key := "exports/fixed/shipping_data_1.csv"

	storage.On("Put", ctx, mock.MatchedBy(func(in port.PutObjectInput) bool {
		b, _ := io.ReadAll(in.Body)
		return in.Key == key && in.ContentType == "text/csv" &&
			in.Filename == "shipping_data_1.csv" && string(b) == "\"Customer\"\n\"ACME\"\n"
	})).Return(&port.PutObjectOutput{Location: "s3://bucket/" + key}, nil)
	storage.On("PresignedURL", ctx, key).Return("https://signed.example/"+key, nil)

	res := csvResult()
	out, err := newTestDeliverer(storage).Deliver(ctx, res)
	require.NoError(t, err)

	assert.Equal(t, "https://signed.example/"+key, out.DownloadURL)
	assert.Nil(t, out.Body)
	assert.Equal(t, "shipping_data_1.csv", out.Filename)
	assert.NotNil(t, res.Body, "input result is not modified")
	storage.AssertExpectations(t)
}

func TestObjectStoreDeliverer_RemoteURLPassesThrough(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	res := &domain.ExportResult{Format: domain.ExportFormatExcel, Filename: "x.xlsx", DownloadURL: "https://remote/x.xlsx"}

	out, err := newTestDeliverer(storage).Deliver(context.Background(), res)
	require.NoError(t, err)
	assert.Equal(t, "https://remote/x.xlsx", out.DownloadURL)
	storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestObjectStoreDeliverer_UploadFailure(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Put", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := newTestDeliverer(storage).Deliver(context.Background(), csvResult())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	assert.Contains(t, err.Error(), "access denied")
}

func TestObjectStoreDeliverer_PresignFailureCleansUp(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	key := "exports/fixed/shipping_data_1.csv"
	storage.On("Put", mock.Anything, mock.Anything).Return(&port.PutObjectOutput{}, nil)
	storage.On("PresignedURL", mock.Anything, key).Return("", errors.New("no credentials"))
	storage.On("Delete", mock.Anything, key).Return(nil)

	_, err := newTestDeliverer(storage).Deliver(context.Background(), csvResult())
	assert.ErrorIs(t, err, domain.ErrExportFailed)
	storage.AssertCalled(t, "Delete", mock.Anything, key)
}

func TestNew(t *testing.T) {
	d, err := New("", nil, "")
	require.NoError(t, err)
	assert.IsType(t, InlineDeliverer{}, d)

	d, err = New(ModeS3, new(mocks.MockObjectStorage), "exports")
	require.NoError(t, err)
	assert.IsType(t, &ObjectStoreDeliverer{}, d)

	_, err = New(ModeS3, nil, "exports")
	assert.Error(t, err)

	_, err = New("ftp", nil, "")
	assert.Error(t, err)
}
