package controller

import (
	"reflect"
	"testing"

	"dontverifyme/pkg/dvm"
)

type structInfo struct {
	Name         string
	FieldTypeMap map[string]string
}

func getStructFieldInfo(v any) structInfo {
	result := structInfo{FieldTypeMap: make(map[string]string)}

	val := reflect.ValueOf(v)
	typ := reflect.TypeOf(v)

	// If it's a pointer, resolve it to the element
	if typ.Kind() == reflect.Ptr {
		val = val.Elem()
		typ = typ.Elem()
	}

	if typ.Kind() != reflect.Struct {
		return result
	}

	result.Name = typ.Name()

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		fieldName := field.Name
		var jsonTagValue *string = nil
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" {
			jsonTagValue = &fieldName
		} else if jsonTag != "-" {
			jsonTagValue = &jsonTag
		}

		if jsonTagValue != nil {
			result.FieldTypeMap[*jsonTagValue] = field.Type.String()
		}
	}

	return result
}

func validateModelContract(i structInfo, j structInfo, t *testing.T) {
	for m, n := range i.FieldTypeMap {
		o, ok := j.FieldTypeMap[m]
		if !ok {
			t.Errorf(
				"%s[%s] doesn't exist in %s",
				i.Name,
				m,
				j.Name,
			)
			continue
		}
		if n != o {
			t.Errorf(
				"%s[%s]'s type[%s] doesn't match %s[%s]'s type[%s]",
				i.Name,
				m,
				n,
				j.Name,
				m,
				o,
			)
		}
	}
}

func TestSessionSdkContracts(t *testing.T) {
	currentStruct := getStructFieldInfo(handleCreateSessionV1Input{})
	contractStruct := getStructFieldInfo(dvm.CreateSessionV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleDeleteSessionV1Output{})
	contractStruct = getStructFieldInfo(dvm.DeleteSessionV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)
}

func TestUserSdkContracts(t *testing.T) {
	currentStruct := getStructFieldInfo(handleCreateUserV1Input{})
	contractStruct := getStructFieldInfo(dvm.CreateUserV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleCreateUserV1Output{})
	contractStruct = getStructFieldInfo(dvm.CreateUserV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleCreateUserMfaV1Output{})
	contractStruct = getStructFieldInfo(dvm.EnrollMfaV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleVerifyUserMfaV1Input{})
	contractStruct = getStructFieldInfo(dvm.VerifyMfaEnrollmentV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleVerifyUserMfaV1Output{})
	contractStruct = getStructFieldInfo(dvm.VerifyMfaEnrollmentV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleDeleteUserMfaV1Output{})
	contractStruct = getStructFieldInfo(dvm.DeleteMfaV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)
}

func TestMfaSdkContracts(t *testing.T) {
	currentStruct := getStructFieldInfo(handleCreateMfaChallengeV1Input{})
	contractStruct := getStructFieldInfo(dvm.CreateMfaChallengeV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleCreateMfaChallengeV1Output{})
	contractStruct = getStructFieldInfo(dvm.CreateMfaChallengeV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleVerifyMfaChallengeV1Input{})
	contractStruct = getStructFieldInfo(dvm.VerifyMfaChallengeV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleVerifyMfaChallengeV1Output{})
	contractStruct = getStructFieldInfo(dvm.VerifyMfaChallengeV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleGetAalV1Output{})
	contractStruct = getStructFieldInfo(dvm.GetAalV1OutputData{})
	validateModelContract(currentStruct, contractStruct, t)
}

func TestGarageSdkContracts(t *testing.T) {
	currentStruct := getStructFieldInfo(handleCreateMotorcycleV1Input{})
	contractStruct := getStructFieldInfo(dvm.CreateMotorcycleV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleCreateTireSetV1Input{})
	contractStruct = getStructFieldInfo(dvm.CreateTireSetV1Input{})
	validateModelContract(currentStruct, contractStruct, t)
}

func TestCmsSdkContracts(t *testing.T) {
	currentStruct := getStructFieldInfo(handleCreatePlatformV1Input{})
	contractStruct := getStructFieldInfo(dvm.CreatePlatformV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleUpdatePlatformV1Input{})
	contractStruct = getStructFieldInfo(dvm.UpdatePlatformV1Input{})
	validateModelContract(currentStruct, contractStruct, t)

	currentStruct = getStructFieldInfo(handleCreateArticleV1Input{})
	contractStruct = getStructFieldInfo(dvm.CreateArticleV1Input{})
	validateModelContract(currentStruct, contractStruct, t)
}

func TestSdkErrorContracts(t *testing.T) {
	if dvm.ErrorAuthRequired.Error() != ErrorAuthRequired.Error() {
		t.Errorf("expected ErrorAuthRequired to be consistent across pkg/dvm and internal/controller")
	}
	if dvm.ErrorChallengeExpired.Error() != ErrorChallengeExpired.Error() {
		t.Errorf("expected ErrorChallengeExpired to be consistent across pkg/dvm and internal/controller")
	}
	if dvm.ErrorEmailExists.Error() != ErrorEmailExists.Error() {
		t.Errorf("expected ErrorEmailExists to be consistent across pkg/dvm and internal/controller")
	}
	if dvm.ErrorMfaLimitReached.Error() != ErrorMfaLimitReached.Error() {
		t.Errorf("expected ErrorMfaLimitReached to be consistent across pkg/dvm and internal/controller")
	}
	if dvm.ErrorMfaRequired.Error() != ErrorMfaRequired.Error() {
		t.Errorf("expected ErrorMfaRequired to be consistent across pkg/dvm and internal/controller")
	}
	if dvm.ErrorMfaTokenInvalid.Error() != ErrorMfaTokenInvalid.Error() {
		t.Errorf("expected ErrorMfaTokenInvalid to be consistent across pkg/dvm and internal/controller")
	}
	if dvm.ErrorNoFactorsEnrolled.Error() != ErrorNoFactorsEnrolled.Error() {
		t.Errorf("expected ErrorNoFactorsEnrolled to be consistent across pkg/dvm and internal/controller")
	}
}

func TestResponseEnvelopeShape(t *testing.T) {
	envelope := getStructFieldInfo(commonHttpResponse{})
	for _, field := range []string{"data", "message", "success"} {
		if _, ok := envelope.FieldTypeMap[field]; !ok {
			t.Errorf("expected the response envelope to carry a %s field", field)
		}
	}
}
