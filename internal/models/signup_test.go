package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFid_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *int64
		wantErr bool
	}{
		{name: "число", input: `12345`, want: int64Ptr(12345)},
		{name: "числовая строка", input: `"67890"`, want: int64Ptr(67890)},
		{name: "null", input: `null`, want: nil},
		{name: "пустая строка", input: `""`, want: nil},
		{name: "отрицательное число", input: `-7`, want: int64Ptr(-7)},
		{name: "дробное число", input: `1.5`, wantErr: true},
		{name: "нечисловая строка", input: `"abc"`, wantErr: true},
		{name: "объект", input: `{"a":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Fid
			err := json.Unmarshal([]byte(tt.input), &f)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, f.Value)
			} else {
				require.NotNil(t, f.Value)
				assert.Equal(t, *tt.want, *f.Value)
			}
		})
	}
}

func TestFid_MarshalJSON(t *testing.T) {
	body, err := json.Marshal(Fid{Value: int64Ptr(42)})
	require.NoError(t, err)
	assert.Equal(t, `42`, string(body))

	body, err = json.Marshal(Fid{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(body))
}

func TestSignupRequest_Decode(t *testing.T) {
	t.Run("полный запрос", func(t *testing.T) {
		var req SignupRequest
		err := json.Unmarshal([]byte(`{"email":"bob@example.com","fid":12345,"display_name":"Bob","plan":"One"}`), &req)
		require.NoError(t, err)

		assert.Equal(t, "bob@example.com", req.Email)
		require.NotNil(t, req.Fid.Value)
		assert.Equal(t, int64(12345), *req.Fid.Value)
		require.NotNil(t, req.DisplayName)
		assert.Equal(t, "Bob", *req.DisplayName)
		require.NotNil(t, req.Plan)
		assert.Equal(t, "One", *req.Plan)
	})

	t.Run("отсутствующие поля остаются nil", func(t *testing.T) {
		var req SignupRequest
		err := json.Unmarshal([]byte(`{"email":"a@b.com"}`), &req)
		require.NoError(t, err)

		assert.Nil(t, req.Fid.Value)
		assert.Nil(t, req.DisplayName)
		assert.Nil(t, req.Plan)
	})

	t.Run("явные null не ломают разбор", func(t *testing.T) {
		var req SignupRequest
		err := json.Unmarshal([]byte(`{"email":"a@b.com","fid":null,"display_name":null,"plan":null}`), &req)
		require.NoError(t, err)

		assert.Nil(t, req.Fid.Value)
		assert.Nil(t, req.DisplayName)
		assert.Nil(t, req.Plan)
	})
}

func int64Ptr(v int64) *int64 { return &v }
