package asradapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	asr "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/asr/v20190614"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/errors"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"

	"artisan-story-platform/backend/internal/objectstore"
)

// TencentASRAdapter implements the ASRAdapter interface for Tencent Cloud
// Speech Recognition.
type TencentASRAdapter struct {
	MinioClient *objectstore.MinioClient
	Settings    VendorSettings
}

// NewTencentASRAdapter creates a new instance of TencentASRAdapter.
func NewTencentASRAdapter(minioClient *objectstore.MinioClient, settings VendorSettings) *TencentASRAdapter {
	if minioClient == nil {
		log.Println("Warning: NewTencentASRAdapter created with a nil MinioClient. File fetching will fail.")
	}
	return &TencentASRAdapter{MinioClient: minioClient, Settings: settings}
}

// Recognize transcribes audio using the Tencent Cloud SentenceRecognition API.
func (a *TencentASRAdapter) Recognize(ctx context.Context, audioObjectName string, languageCode string) (string, string, error) {
	if a.MinioClient == nil {
		return "", "", fmt.Errorf("TencentASRAdapter: MinioClient is not initialized")
	}
	if a.Settings.APIKey == "" {
		return "", "", fmt.Errorf("Tencent Cloud SecretId is missing in vendor settings")
	}
	if a.Settings.APISecret == "" {
		return "", "", fmt.Errorf("Tencent Cloud SecretKey is missing in vendor settings")
	}
	if a.Settings.Region == "" {
		return "", "", fmt.Errorf("Tencent Cloud region is missing in vendor settings")
	}

	credential := common.NewCredential(a.Settings.APIKey, a.Settings.APISecret)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = "asr.tencentcloudapi.com"
	if a.Settings.Endpoint != "" {
		cpf.HttpProfile.Endpoint = a.Settings.Endpoint
		log.Printf("Using custom Tencent ASR endpoint: %s", cpf.HttpProfile.Endpoint)
	}

	client, err := asr.NewClient(credential, a.Settings.Region, cpf)
	if err != nil {
		return "", "", fmt.Errorf("failed to create Tencent ASR client: %w", err)
	}

	audioBytes, err := a.MinioClient.GetFileBytes(ctx, audioObjectName)
	if err != nil {
		return "", "", fmt.Errorf("failed to fetch audio file '%s' from MinIO: %w", audioObjectName, err)
	}
	base64Audio := base64.StdEncoding.EncodeToString(audioBytes)

	engineModelType := a.Settings.EngineModelType
	if engineModelType == "" {
		// SentenceRecognition engine types bundle language and sample rate.
		if strings.HasPrefix(languageCode, "en") {
			engineModelType = "16k_en"
		} else {
			engineModelType = "16k_zh"
		}
	}

	request := asr.NewSentenceRecognitionRequest()
	request.SubServiceType = common.Uint64Ptr(2)
	request.EngSerViceType = common.StringPtr(engineModelType)
	request.SourceType = common.Uint64Ptr(1)
	request.Data = common.StringPtr(base64Audio)
	request.DataLen = common.Int64Ptr(int64(len(audioBytes)))

	voiceFormat := strings.TrimPrefix(filepath.Ext(audioObjectName), ".")
	if voiceFormat == "" {
		voiceFormat = "wav"
	}
	request.VoiceFormat = common.StringPtr(voiceFormat)

	log.Printf("Sending SentenceRecognition request to Tencent ASR API for %s. EngSerViceType: %s, VoiceFormat: %s",
		audioObjectName, engineModelType, voiceFormat)
	startTime := time.Now()
	response, err := client.SentenceRecognitionWithContext(ctx, request)
	log.Printf("Tencent ASR API call for %s completed in %v", audioObjectName, time.Since(startTime))

	rawResponseBytes, _ := json.Marshal(response)
	rawResponse := string(rawResponseBytes)

	if err != nil {
		if terr, ok := err.(*errors.TencentCloudSDKError); ok {
			log.Printf("Tencent ASR API Error: Code=%s, Message=%s, RequestId=%s", terr.GetCode(), terr.GetMessage(), terr.GetRequestId())
			return "", rawResponse, fmt.Errorf("Tencent ASR API error: %s (Code: %s)", terr.GetMessage(), terr.GetCode())
		}
		return "", rawResponse, fmt.Errorf("Tencent ASR API request failed: %w", err)
	}

	if response.Response == nil || response.Response.Result == nil {
		return "", rawResponse, fmt.Errorf("Tencent ASR API returned nil response or result")
	}

	recognizedText := *response.Response.Result
	log.Printf("TencentASRAdapter: Successfully recognized text for '%s'", audioObjectName)
	return recognizedText, rawResponse, nil
}
