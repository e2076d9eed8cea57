package vendoradapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	asr "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/asr/v20190614"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"

	"crop-asr-qa/backend/internal/datastore"
)

// TencentASRAdapter uses Tencent Cloud's sentence recognition API, which
// accepts base64 audio inline and suits the short clips this service handles.
type TencentASRAdapter struct{}

func NewTencentASRAdapter() *TencentASRAdapter {
	return &TencentASRAdapter{}
}

func (a *TencentASRAdapter) Transcribe(ctx context.Context, audio []byte, languageCode string, cfg *datastore.ProviderConfig) (string, string, error) {
	if !cfg.APIKey.Valid || cfg.APIKey.String == "" {
		return "", "", fmt.Errorf("tencent SecretId (api_key) is missing in provider configuration")
	}
	if !cfg.APISecret.Valid || cfg.APISecret.String == "" {
		return "", "", fmt.Errorf("tencent SecretKey (api_secret) is missing in provider configuration")
	}

	region := ""
	engineModelType := "16k_zh"
	voiceFormat := "wav"
	if cfg.OtherConfigs != nil {
		var other map[string]interface{}
		if err := json.Unmarshal(cfg.OtherConfigs, &other); err == nil {
			if r, ok := other["tencent_region"].(string); ok && r != "" {
				region = r
			}
			if emt, ok := other["engine_model_type"].(string); ok && emt != "" {
				engineModelType = emt
			}
			if vf, ok := other["voice_format"].(string); ok && vf != "" {
				voiceFormat = vf
			}
		}
	}
	if region == "" {
		return "", "", fmt.Errorf("tencent region is missing in provider configuration (other_configs.tencent_region)")
	}

	credential := common.NewCredential(cfg.APIKey.String, cfg.APISecret.String)
	cpf := profile.NewClientProfile()
	if cfg.APIEndpoint.Valid && cfg.APIEndpoint.String != "" {
		cpf.HttpProfile.Endpoint = cfg.APIEndpoint.String
	}

	client, err := asr.NewClient(credential, region, cpf)
	if err != nil {
		return "", "", fmt.Errorf("failed to create Tencent ASR client: %w", err)
	}

	request := asr.NewSentenceRecognitionRequest()
	request.EngSerViceType = common.StringPtr(engineModelType)
	request.SourceType = common.Uint64Ptr(1) // inline audio data
	request.VoiceFormat = common.StringPtr(voiceFormat)
	request.Data = common.StringPtr(base64.StdEncoding.EncodeToString(audio))
	request.DataLen = common.Int64Ptr(int64(len(audio)))

	response, err := client.SentenceRecognitionWithContext(ctx, request)
	if err != nil {
		return "", "", fmt.Errorf("tencent sentence recognition failed: %w", err)
	}

	raw := response.ToJsonString()
	if response.Response == nil || response.Response.Result == nil {
		return "", raw, nil
	}
	return *response.Response.Result, raw, nil
}
